// Package guard serializes certificate issuance per session.
//
// A session may have at most one issuance in flight. Locks are
// self-expiring: a holder that crashes mid-issuance blocks the session only
// until the grace window elapses, after which a new attempt may overwrite
// the stale lock.
package guard

import (
	"context"
	"sync"
	"time"

	"originstamp/pkg/platform/sentinel"
)

// Guard is the issuance lock. Acquire returns sentinel.ErrLocked when an
// unexpired lock for the session is held by someone else. Release is
// idempotent: releasing an absent lock is not an error.
type Guard interface {
	Acquire(ctx context.Context, sessionID string, now time.Time) error
	Release(ctx context.Context, sessionID string) error
}

// InMemoryGuard tracks in-flight issuances in process memory.
type InMemoryGuard struct {
	mu     sync.Mutex
	held   map[string]time.Time
	window time.Duration
}

// NewInMemoryGuard creates a guard whose locks expire after window.
func NewInMemoryGuard(window time.Duration) *InMemoryGuard {
	return &InMemoryGuard{
		held:   make(map[string]time.Time),
		window: window,
	}
}

// Acquire takes the session lock, overwriting a stale one.
func (g *InMemoryGuard) Acquire(_ context.Context, sessionID string, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if expiry, ok := g.held[sessionID]; ok && now.Before(expiry) {
		return sentinel.ErrLocked
	}
	g.held[sessionID] = now.Add(g.window)
	return nil
}

// Release frees the session lock.
func (g *InMemoryGuard) Release(_ context.Context, sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.held, sessionID)
	return nil
}
