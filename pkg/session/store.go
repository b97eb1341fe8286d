package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rvasanth/distributor-console/pkg/models"
)

// ErrNoToken is returned by a TokenStore when nothing is persisted.
var ErrNoToken = errors.New("session: no token stored")

// TokenStore is the durable key-value store for the session token and role
// string. Nothing else is ever persisted client-side.
type TokenStore interface {
	// Save persists the token and role, replacing any previous value.
	Save(token string, role models.Role) error

	// Load returns the persisted token and role, or ErrNoToken.
	Load() (string, models.Role, error)

	// Clear removes the persisted token. Clearing an empty store is not an
	// error.
	Clear() error
}

type storedToken struct {
	AccessToken string      `json:"access_token"`
	Role        models.Role `json:"role"`
}

// FileStore persists the token as a single 0600 JSON file, the console's
// analog of the browser's durable key-value store.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Make sure we conform to the interface
var _ TokenStore = (*FileStore)(nil)

// Save persists the token and role.
func (s *FileStore) Save(token string, role models.Role) error {
	payload, err := json.Marshal(storedToken{AccessToken: token, Role: role})
	if err != nil {
		return fmt.Errorf("failed to marshal stored token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Load returns the persisted token and role.
func (s *FileStore) Load() (string, models.Role, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", ErrNoToken
		}
		return "", "", fmt.Errorf("failed to read token file: %w", err)
	}

	var stored storedToken
	if err := json.Unmarshal(raw, &stored); err != nil || stored.AccessToken == "" {
		// An unreadable token file is treated as unauthenticated.
		return "", "", ErrNoToken
	}
	return stored.AccessToken, stored.Role, nil
}

// Clear removes the persisted token. Safe to call twice.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory TokenStore for tests.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	role  models.Role
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Make sure we conform to the interface
var _ TokenStore = (*MemoryStore)(nil)

func (s *MemoryStore) Save(token string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.role = role
	return nil
}

func (s *MemoryStore) Load() (string, models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", "", ErrNoToken
	}
	return s.token, s.role, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.role = ""
	return nil
}
