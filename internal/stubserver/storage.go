package stubserver

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kevgathuku/docue/internal/core/domain"
	"github.com/kevgathuku/docue/internal/core/ports"
)

// Storage is the stub's in-memory state. It exists so the client can be
// exercised end-to-end without an external service; nothing survives a
// restart.
type Storage struct {
	mu    sync.RWMutex
	users map[string]*userRecord
	roles map[string]domain.Role
	docs  map[string]domain.Document
	order []string // document insertion order
}

type userRecord struct {
	domain.User
	PasswordHash string
}

// NewStorage seeds the three built-in roles and the initial admin account.
func NewStorage(adminEmail, adminPassword string) (*Storage, error) {
	s := &Storage{
		users: make(map[string]*userRecord),
		roles: make(map[string]domain.Role),
		docs:  make(map[string]domain.Document),
	}

	for _, r := range []domain.Role{
		{ID: "role-viewer", Title: "viewer", AccessLevel: domain.LevelViewer},
		{ID: "role-staff", Title: "staff", AccessLevel: domain.LevelStaff},
		{ID: "role-admin", Title: "admin", AccessLevel: domain.LevelAdmin},
	} {
		s.roles[r.ID] = r
	}

	_, err := s.CreateUser(ports.SignupInput{
		Username:  "admin",
		Email:     adminEmail,
		Password:  adminPassword,
		FirstName: "Docue",
		LastName:  "Admin",
	}, s.roles["role-admin"])
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return s, nil
}

// DefaultRole is the role assigned to signups.
func (s *Storage) DefaultRole() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles["role-viewer"]
}

// --- Users ---

func (s *Storage) CreateUser(input ports.SignupInput, role domain.Role) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == input.Email {
			return domain.User{}, domain.ErrConflict
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:       uuid.NewString(),
		Username: input.Username,
		Email:    input.Email,
		Name:     domain.Name{First: input.FirstName, Last: input.LastName},
		Role:     role,
	}
	s.users[user.ID] = &userRecord{User: user, PasswordHash: string(hash)}
	return user, nil
}

// Authenticate matches a username (or email) and password.
func (s *Storage) Authenticate(username, password string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username || u.Email == username {
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return domain.User{}, domain.ErrUnauthorized
			}
			return u.User, nil
		}
	}
	return domain.User{}, domain.ErrUnauthorized
}

func (s *Storage) GetUser(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u.User, nil
}

func (s *Storage) ListUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (s *Storage) UpdateUser(id string, updated domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && other.Email == updated.Email {
			return domain.User{}, domain.ErrConflict
		}
	}
	updated.ID = id
	rec.User = updated
	return rec.User, nil
}

func (s *Storage) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// --- Roles ---

func (s *Storage) ListRoles() []domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccessLevel < out[j].AccessLevel })
	return out
}

func (s *Storage) CreateRole(payload ports.RolePayload) domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	role := domain.Role{
		ID:          uuid.NewString(),
		Title:       payload.Title,
		AccessLevel: payload.AccessLevel,
	}
	s.roles[role.ID] = role
	return role
}

func (s *Storage) UpdateRole(id string, payload ports.RolePayload) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	role, ok := s.roles[id]
	if !ok {
		return domain.Role{}, domain.ErrNotFound
	}
	role.Title = payload.Title
	role.AccessLevel = payload.AccessLevel
	s.roles[id] = role
	return role, nil
}

func (s *Storage) DeleteRole(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.roles, id)
	return nil
}

// --- Documents ---

// ListDocuments returns the documents the caller may read, in creation order.
func (s *Storage) ListDocuments(caller domain.User) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		doc, ok := s.docs[id]
		if ok && domain.CanRead(caller, doc) {
			out = append(out, doc)
		}
	}
	return out
}

func (s *Storage) CreateDocument(owner domain.User, payload ports.DocumentPayload) domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := domain.Document{
		ID:          uuid.NewString(),
		Title:       payload.Title,
		Content:     payload.Content,
		Role:        payload.Role,
		OwnerID:     owner.ID,
		DateCreated: time.Now().UTC(),
	}
	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	return doc
}

func (s *Storage) GetDocument(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, domain.ErrNotFound
	}
	return doc, nil
}

// UpdateDocument rewrites title, content and role. Owner and creation date
// are immutable.
func (s *Storage) UpdateDocument(id string, payload ports.DocumentPayload) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, domain.ErrNotFound
	}
	doc.Title = payload.Title
	doc.Content = payload.Content
	doc.Role = payload.Role
	s.docs[id] = doc
	return doc, nil
}

func (s *Storage) DeleteDocument(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	for i, cur := range s.order {
		if cur == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
