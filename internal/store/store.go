// Package store holds the process-wide client state: the session plus the
// documents, roles and users slices. Writes go through a single Dispatch
// ingress and are serialized and all-or-nothing; reads go through selectors
// and may come from any goroutine. A monotonic sequence number orders
// asynchronous results so that, per slice and operation, the last dispatched
// request wins regardless of completion order.
package store

import (
	"sync"
	"sync/atomic"

	"github.com/kevgathuku/docue/internal/core/domain"
)

// Entity is anything a resource slice can hold.
type Entity interface {
	EntityID() string
}

// Action is one store mutation. Actions are applied atomically: selectors
// never observe a half-applied mutation.
type Action interface {
	apply(s *Store)
}

// Store is the sole shared mutable state of the client.
type Store struct {
	mu  sync.RWMutex
	seq atomic.Uint64

	session   domain.Session
	documents slice[domain.Document]
	roles     slice[domain.Role]
	users     slice[domain.User]

	subMu sync.Mutex
	subs  map[int]func()
	subID int
}

// New returns an empty store with the session in idle.
func New() *Store {
	return &Store{
		documents: newSlice[domain.Document](),
		roles:     newSlice[domain.Role](),
		users:     newSlice[domain.User](),
		subs:      make(map[int]func()),
	}
}

// Dispatch applies one action and then notifies subscribers. Dispatches are
// FIFO in lock-acquisition order.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	a.apply(s)
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every applied dispatch. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	s.subID++
	id := s.subID
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// nextAt allocates the next monotonic sequence number.
func (s *Store) nextAt() uint64 {
	return s.seq.Add(1)
}

// Session returns the current session slice.
func (s *Store) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Documents returns the typed handle for the documents slice.
func (s *Store) Documents() Resource[domain.Document] {
	return Resource[domain.Document]{store: s, slice: &s.documents}
}

// Roles returns the typed handle for the roles slice.
func (s *Store) Roles() Resource[domain.Role] {
	return Resource[domain.Role]{store: s, slice: &s.roles}
}

// Users returns the typed handle for the users slice.
func (s *Store) Users() Resource[domain.User] {
	return Resource[domain.User]{store: s, slice: &s.users}
}

// sessionAction replaces the session slice. When reset is set every resource
// slice is evicted in the same dispatch, keeping token clearing and store
// reset one atomic transition.
type sessionAction struct {
	next  domain.Session
	reset bool
}

func (a sessionAction) apply(s *Store) {
	s.session = a.next
	if a.reset {
		s.documents = newSlice[domain.Document]()
		s.roles = newSlice[domain.Role]()
		s.users = newSlice[domain.User]()
	}
}

// SetSession dispatches a session transition.
func (s *Store) SetSession(next domain.Session) {
	s.Dispatch(sessionAction{next: next})
}

// ResetSession dispatches a session transition that also evicts every
// resource slice (logout, or any observed 401).
func (s *Store) ResetSession(next domain.Session) {
	s.Dispatch(sessionAction{next: next, reset: true})
}
