// Package session drives the authentication state machine: login, signup,
// logout and the bootstrap-time probe. Token persistence and session state
// always move together — every helper that touches one transitions the
// other in the same step.
package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/kevgathuku/docue/internal/codec"
	"github.com/kevgathuku/docue/internal/core/domain"
	"github.com/kevgathuku/docue/internal/core/ports"
	"github.com/kevgathuku/docue/internal/store"
)

const (
	loginPath  = "/users/login"
	signupPath = "/users"
	probePath  = "/users/session"
)

// Keeper owns the session slice of the store.
type Keeper struct {
	gw     ports.Gateway
	tokens ports.TokenStore
	store  *store.Store
	log    zerolog.Logger
}

func NewKeeper(gw ports.Gateway, tokens ports.TokenStore, st *store.Store, log zerolog.Logger) *Keeper {
	return &Keeper{gw: gw, tokens: tokens, store: st, log: log}
}

// Login authenticates with username/password credentials. On success the
// token is persisted and the session becomes authenticated; on failure the
// session returns to idle with the error set and nothing is persisted.
func (k *Keeper) Login(ctx context.Context, creds ports.Credentials) error {
	if err := codec.ValidateInput(creds); err != nil {
		return err
	}
	return k.authenticate(ctx, loginPath, creds)
}

// Signup creates an account and authenticates the new session directly.
func (k *Keeper) Signup(ctx context.Context, input ports.SignupInput) error {
	if err := codec.ValidateInput(input); err != nil {
		return err
	}
	return k.authenticate(ctx, signupPath, input)
}

func (k *Keeper) authenticate(ctx context.Context, path string, body any) error {
	k.store.SetSession(domain.Session{State: domain.StateAuthenticating})

	resp := k.gw.Request(ctx, http.MethodPost, path, body, "")
	if !resp.OK {
		k.store.SetSession(domain.Session{State: domain.StateIdle, Error: resp.Err})
		k.log.Info().Int("status", resp.Status).Str("path", path).Msg("authentication rejected")
		return fmt.Errorf("%w: %s", domain.ClassifyStatus(resp.Status), resp.Err)
	}

	token, user, err := codec.DecodeAuth(resp.Body)
	if err != nil {
		k.store.SetSession(domain.Session{State: domain.StateIdle, Error: err.Error()})
		return err
	}

	if err := k.tokens.Save(token); err != nil {
		k.store.SetSession(domain.Session{State: domain.StateIdle, Error: err.Error()})
		return fmt.Errorf("persist token: %w", err)
	}
	k.store.SetSession(domain.Session{
		State: domain.StateAuthenticated,
		Token: token,
		User:  &user,
	})
	k.log.Info().Str("user", user.Username).Msg("session authenticated")
	return nil
}

// Probe hydrates the session from the persisted token at bootstrap. A
// missing token leaves the session idle. Any probe failure clears the token
// and resets the whole store, so a stale token can never present as a
// logged-in UI.
func (k *Keeper) Probe(ctx context.Context) error {
	token, err := k.tokens.Load()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		k.store.SetSession(domain.Session{State: domain.StateIdle})
		return nil
	}

	k.store.SetSession(domain.Session{State: domain.StateProbing, Token: token})

	resp := k.gw.Request(ctx, http.MethodGet, probePath, nil, token)
	if !resp.OK {
		k.reset(resp.Err)
		k.log.Info().Int("status", resp.Status).Msg("session probe failed")
		if resp.Status == http.StatusUnauthorized {
			return nil
		}
		return fmt.Errorf("%w: %s", domain.ClassifyStatus(resp.Status), resp.Err)
	}

	user, err := codec.DecodeSessionUser(resp.Body)
	if err != nil {
		k.reset(err.Error())
		return err
	}

	k.store.SetSession(domain.Session{
		State: domain.StateAuthenticated,
		Token: token,
		User:  &user,
	})
	k.log.Info().Str("user", user.Username).Msg("session restored")
	return nil
}

// Logout clears the token and evicts the entire store.
func (k *Keeper) Logout() error {
	err := k.tokens.Clear()
	k.store.ResetSession(domain.Session{State: domain.StateIdle})
	k.log.Info().Msg("session ended")
	return err
}

// HandleUnauthorized is invoked when any endpoint answers 401: the token is
// cleared and the store reset globally, in one transition.
func (k *Keeper) HandleUnauthorized() {
	k.log.Warn().Msg("unauthorized response observed, resetting session")
	k.reset("session expired")
}

func (k *Keeper) reset(msg string) {
	_ = k.tokens.Clear()
	k.store.ResetSession(domain.Session{State: domain.StateIdle, Error: msg})
}
