// Package resources implements the asynchronous request lifecycle for the
// three entity kinds. Every operation dispatches pending, performs the HTTP
// exchange, and dispatches exactly one terminal transition; stale in-flight
// results are discarded by the store's sequence check.
package resources

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

// Deps carries the collaborators shared by all three services.
type Deps struct {
	Gateway ports.Gateway
	Store   *store.Store
	// Token returns the session token to attach to requests.
	Token func() string
	// OnUnauthorized is called whenever an operation observes a 401.
	OnUnauthorized func()
	Logger         zerolog.Logger
}

// Service runs the five operations for one entity kind.
type Service[T store.Entity] struct {
	gw         ports.Gateway
	res        store.Resource[T]
	path       string
	decodeOne  func([]byte) (T, error)
	decodeList func([]byte) ([]T, error)
	token      func() string
	onUnauth   func()
	log        zerolog.Logger
}

// NewDocuments returns the documents service.
func NewDocuments(d Deps) *Service[domain.Document] {
	return &Service[domain.Document]{
		gw: d.Gateway, res: d.Store.Documents(), path: "/api/documents",
		decodeOne: codec.DecodeDocument, decodeList: codec.DecodeDocumentList,
		token: d.Token, onUnauth: d.OnUnauthorized,
		log: d.Logger.With().Str("resource", "documents").Logger(),
	}
}

// NewRoles returns the roles service.
func NewRoles(d Deps) *Service[domain.Role] {
	return &Service[domain.Role]{
		gw: d.Gateway, res: d.Store.Roles(), path: "/roles",
		decodeOne: codec.DecodeRole, decodeList: codec.DecodeRoleList,
		token: d.Token, onUnauth: d.OnUnauthorized,
		log: d.Logger.With().Str("resource", "roles").Logger(),
	}
}

// NewUsers returns the users service.
func NewUsers(d Deps) *Service[domain.User] {
	return &Service[domain.User]{
		gw: d.Gateway, res: d.Store.Users(), path: "/users",
		decodeOne: codec.DecodeUser, decodeList: codec.DecodeUserList,
		token: d.Token, onUnauth: d.OnUnauthorized,
		log: d.Logger.With().Str("resource", "users").Logger(),
	}
}

// Slice exposes the selectors for this service's slice.
func (s *Service[T]) Slice() store.Resource[T] { return s.res }

// FetchAll loads the full list, replacing the slice wholesale.
func (s *Service[T]) FetchAll(ctx context.Context) ([]T, error) {
	at := s.res.Begin(store.OpFetchAll)
	resp := s.gw.Request(ctx, http.MethodGet, s.path, nil, s.token())
	if !resp.OK {
		return nil, s.fail(store.OpFetchAll, at, "", resp)
	}
	items, err := s.decodeList(resp.Body)
	if err != nil {
		s.res.Reject(store.OpFetchAll, at, err.Error())
		return nil, err
	}
	s.res.ResolveList(at, items)
	return items, nil
}

// FetchOne loads one entity, upserting it into the list and selecting it.
func (s *Service[T]) FetchOne(ctx context.Context, id string) (T, error) {
	var zero T
	at := s.res.Begin(store.OpFetchOne)
	resp := s.gw.Request(ctx, http.MethodGet, s.path+"/"+id, nil, s.token())
	if !resp.OK {
		return zero, s.fail(store.OpFetchOne, at, id, resp)
	}
	item, err := s.decodeOne(resp.Body)
	if err != nil {
		s.res.Reject(store.OpFetchOne, at, err.Error())
		return zero, err
	}
	s.res.ResolveOne(at, item)
	return item, nil
}

// Create validates the payload, posts it and appends the created entity.
func (s *Service[T]) Create(ctx context.Context, payload any) (T, error) {
	var zero T
	if err := codec.ValidateInput(payload); err != nil {
		return zero, err
	}
	at := s.res.Begin(store.OpCreate)
	resp := s.gw.Request(ctx, http.MethodPost, s.path, payload, s.token())
	if !resp.OK {
		return zero, s.fail(store.OpCreate, at, "", resp)
	}
	item, err := s.decodeOne(resp.Body)
	if err != nil {
		s.res.Reject(store.OpCreate, at, err.Error())
		return zero, err
	}
	s.res.ResolveCreated(at, item)
	s.log.Info().Str("id", item.EntityID()).Msg("created")
	return item, nil
}

// Update validates the payload, puts it and replaces the matching entity.
func (s *Service[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var zero T
	if err := codec.ValidateInput(payload); err != nil {
		return zero, err
	}
	at := s.res.Begin(store.OpUpdate)
	resp := s.gw.Request(ctx, http.MethodPut, s.path+"/"+id, payload, s.token())
	if !resp.OK {
		return zero, s.fail(store.OpUpdate, at, id, resp)
	}
	item, err := s.decodeOne(resp.Body)
	if err != nil {
		s.res.Reject(store.OpUpdate, at, err.Error())
		return zero, err
	}
	s.res.ResolveUpdated(at, item)
	return item, nil
}

// Delete removes the entity, clearing the selection when it matches.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	at := s.res.Begin(store.OpDelete)
	resp := s.gw.Request(ctx, http.MethodDelete, s.path+"/"+id, nil, s.token())
	if !resp.OK {
		return s.fail(store.OpDelete, at, id, resp)
	}
	s.res.ResolveDeleted(at, id)
	return nil
}

// fail records the rejected transition and maps the response onto the error
// taxonomy. A 401 escalates globally through the session keeper; a 404 for
// an entity the view had selected clears that selection.
func (s *Service[T]) fail(op store.Op, at uint64, id string, resp ports.Response) error {
	s.res.Reject(op, at, resp.Err)
	switch resp.Status {
	case http.StatusUnauthorized:
		if s.onUnauth != nil {
			s.onUnauth()
		}
	case http.StatusNotFound:
		if id != "" {
			s.res.DropSelected(id)
		}
	}
	s.log.Debug().Str("op", string(op)).Int("status", resp.Status).Str("error", resp.Err).Msg("operation rejected")
	return fmt.Errorf("%w: %s", domain.ClassifyStatus(resp.Status), resp.Err)
}
