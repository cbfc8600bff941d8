package store

import (
	"context"
	"sync"

	"originstamp/internal/subscription/models"
)

// InMemoryRegistry maps usernames to subscription tiers. Users with no entry
// are on the free tier; the registry never stores an explicit free entry so
// downgrades are a plain delete.
type InMemoryRegistry struct {
	mu    sync.RWMutex
	tiers map[string]models.Tier
}

func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{tiers: make(map[string]models.Tier)}
}

// GetTier returns the user's tier, defaulting to free when absent.
func (s *InMemoryRegistry) GetTier(_ context.Context, username string) (models.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tier, ok := s.tiers[username]; ok {
		return tier, nil
	}
	return models.TierFree, nil
}

// SetTier records the user's tier. Setting free removes the entry.
func (s *InMemoryRegistry) SetTier(_ context.Context, username string, tier models.Tier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tier == models.TierFree {
		delete(s.tiers, username)
		return nil
	}
	s.tiers[username] = tier
	return nil
}
