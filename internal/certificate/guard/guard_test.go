package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"originstamp/pkg/platform/sentinel"
)

func TestInMemoryGuard(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("second acquire within window is rejected", func(t *testing.T) {
		g := NewInMemoryGuard(10 * time.Second)
		require.NoError(t, g.Acquire(ctx, "sess-1", base))

		err := g.Acquire(ctx, "sess-1", base.Add(5*time.Second))
		assert.ErrorIs(t, err, sentinel.ErrLocked)
	})

	t.Run("acquire at exact expiry succeeds", func(t *testing.T) {
		g := NewInMemoryGuard(10 * time.Second)
		require.NoError(t, g.Acquire(ctx, "sess-1", base))

		// now == expiry is not before expiry, so the lock is stale.
		assert.NoError(t, g.Acquire(ctx, "sess-1", base.Add(10*time.Second)))
	})

	t.Run("one nanosecond before expiry is still locked", func(t *testing.T) {
		g := NewInMemoryGuard(10 * time.Second)
		require.NoError(t, g.Acquire(ctx, "sess-1", base))

		err := g.Acquire(ctx, "sess-1", base.Add(10*time.Second-time.Nanosecond))
		assert.ErrorIs(t, err, sentinel.ErrLocked)
	})

	t.Run("release frees the lock immediately", func(t *testing.T) {
		g := NewInMemoryGuard(10 * time.Second)
		require.NoError(t, g.Acquire(ctx, "sess-1", base))
		require.NoError(t, g.Release(ctx, "sess-1"))

		assert.NoError(t, g.Acquire(ctx, "sess-1", base.Add(time.Second)))
	})

	t.Run("release of absent lock is a no-op", func(t *testing.T) {
		g := NewInMemoryGuard(10 * time.Second)
		assert.NoError(t, g.Release(ctx, "never-held"))
	})

	t.Run("locks are per session", func(t *testing.T) {
		g := NewInMemoryGuard(10 * time.Second)
		require.NoError(t, g.Acquire(ctx, "sess-1", base))
		assert.NoError(t, g.Acquire(ctx, "sess-2", base))
	})
}
