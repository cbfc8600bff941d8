package store

import (
	"context"
	"sort"
	"sync"

	"originstamp/internal/user/models"
	"originstamp/pkg/platform/sentinel"
)

// InMemoryStore keeps accounts and permission records in memory.
type InMemoryStore struct {
	mu          sync.RWMutex
	users       map[string]models.User
	permissions map[string]models.Permissions
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:       make(map[string]models.User),
		permissions: make(map[string]models.Permissions),
	}
}

// Create inserts a new user, failing with sentinel.ErrConflict when the
// username is taken.
func (s *InMemoryStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return sentinel.ErrConflict
	}
	s.users[user.Username] = user
	return nil
}

// FindByUsername returns the user, or sentinel.ErrNotFound.
func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return models.User{}, sentinel.ErrNotFound
}

// ListUsernames returns all usernames in lexical order.
func (s *InMemoryStore) ListUsernames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Count returns the number of registered users.
func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// FindPermissions returns the user's permission record if one exists.
// The second return reports presence; absence is not an error.
func (s *InMemoryStore) FindPermissions(_ context.Context, username string) (models.Permissions, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	perms, ok := s.permissions[username]
	return perms, ok, nil
}

// SavePermissions inserts or replaces a permission record.
func (s *InMemoryStore) SavePermissions(_ context.Context, perms models.Permissions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions[perms.Username] = perms
	return nil
}
