package store

import (
	"context"
	"sort"
	"sync"

	"originstamp/internal/session/models"
	"originstamp/pkg/platform/sentinel"
)

// InMemoryStore keeps sessions in memory.
// It intentionally favors clarity over performance.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*models.Session)}
}

// Save inserts or replaces a session.
func (s *InMemoryStore) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneSession(session)
	s.sessions[session.SessionID] = cp
	return nil
}

// FindByID returns a copy of the session, or sentinel.ErrNotFound.
func (s *InMemoryStore) FindByID(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneSession(session), nil
}

// ListByOwner returns the owner's sessions ordered by creation time, then ID
// for a stable order between equal timestamps.
func (s *InMemoryStore) ListByOwner(_ context.Context, username string) ([]*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Session
	for _, session := range s.sessions {
		if session.OwnerUsername == username {
			out = append(out, cloneSession(session))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].SessionID < out[j].SessionID
	})
	return out, nil
}

// Execute atomically validates then mutates a session under the store lock.
// Returns a copy of the mutated session.
func (s *InMemoryStore) Execute(
	_ context.Context,
	sessionID string,
	validate func(*models.Session) error,
	mutate func(*models.Session),
) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(session); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(session)
	}
	return cloneSession(session), nil
}

// Count returns the number of stored sessions.
func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

func cloneSession(in *models.Session) *models.Session {
	out := *in
	out.PhotoRefs = append([]string(nil), in.PhotoRefs...)
	return &out
}
