// Package docue assembles the Docue client core: configuration, the HTTP
// gateway, the central store, the session keeper and the three resource
// services.
package docue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kevgathuku/docue/internal/config"
	"github.com/kevgathuku/docue/internal/core/domain"
	"github.com/kevgathuku/docue/internal/core/ports"
	"github.com/kevgathuku/docue/internal/gateway"
	"github.com/kevgathuku/docue/internal/resources"
	"github.com/kevgathuku/docue/internal/session"
	"github.com/kevgathuku/docue/internal/store"
	"github.com/kevgathuku/docue/internal/tokenstore"
)

// Client is the application-facing entry point. Reads go through Store
// selectors; writes go through the Session keeper and resource services.
type Client struct {
	Store     *store.Store
	Session   *session.Keeper
	Documents *resources.Service[domain.Document]
	Roles     *resources.Service[domain.Role]
	Users     *resources.Service[domain.User]
}

// New builds a client from environment configuration, with a file-backed
// token store at the default location (or TOKEN_FILE when set).
func New(ctx context.Context, log zerolog.Logger) (*Client, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	path := cfg.TokenFile
	if path == "" {
		if path, err = tokenstore.DefaultPath(); err != nil {
			return nil, err
		}
	}

	gw := gateway.New(cfg.Resolve(), log)
	return Assemble(gw, tokenstore.NewFileStore(path), log), nil
}

// Assemble wires a client from explicit collaborators. Tests use it with an
// in-memory token store and a local test server.
func Assemble(gw ports.Gateway, tokens ports.TokenStore, log zerolog.Logger) *Client {
	st := store.New()
	keeper := session.NewKeeper(gw, tokens, st, log)

	deps := resources.Deps{
		Gateway:        gw,
		Store:          st,
		Token:          func() string { return st.Session().Token },
		OnUnauthorized: keeper.HandleUnauthorized,
		Logger:         log,
	}

	return &Client{
		Store:     st,
		Session:   keeper,
		Documents: resources.NewDocuments(deps),
		Roles:     resources.NewRoles(deps),
		Users:     resources.NewUsers(deps),
	}
}

// Bootstrap restores the session from the persisted token, the application's
// startup sequence.
func (c *Client) Bootstrap(ctx context.Context) error {
	return c.Session.Probe(ctx)
}
