// Package tokenstore persists the session token between runs. Exactly one
// key is stored, named "user", mirroring the browser-local-storage contract.
package tokenstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the token in a small JSON file, created with 0600.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the per-user token file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "docue", "session.json"), nil
}

type payload struct {
	User string `json:"user"`
}

// Load returns the stored token, or "" when none is stored.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		// A corrupt file is the same as no token.
		return "", nil
	}
	return p.User, nil
}

// Save writes the token, creating parent directories as needed.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(payload{User: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is an in-memory token store for tests.
type MemStore struct {
	token string
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (string, error) { return s.token, nil }

func (s *MemStore) Save(token string) error {
	s.token = token
	return nil
}

func (s *MemStore) Clear() error {
	s.token = ""
	return nil
}
