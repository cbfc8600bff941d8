//go:build integration

package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"originstamp/pkg/platform/sentinel"
	"originstamp/pkg/testutil/containers"
)

func TestRedisGuard(t *testing.T) {
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)

	t.Run("lock excludes a second holder", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		g := NewRedisGuard(rc.Client, 30*time.Second)

		require.NoError(t, g.Acquire(ctx, "sess-1", time.Now()))
		assert.ErrorIs(t, g.Acquire(ctx, "sess-1", time.Now()), sentinel.ErrLocked)
		assert.NoError(t, g.Acquire(ctx, "sess-2", time.Now()))
	})

	t.Run("release frees the lock", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		g := NewRedisGuard(rc.Client, 30*time.Second)

		require.NoError(t, g.Acquire(ctx, "sess-1", time.Now()))
		require.NoError(t, g.Release(ctx, "sess-1"))
		assert.NoError(t, g.Acquire(ctx, "sess-1", time.Now()))
	})

	t.Run("stale lock expires on its own", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		g := NewRedisGuard(rc.Client, 100*time.Millisecond)

		require.NoError(t, g.Acquire(ctx, "sess-1", time.Now()))
		time.Sleep(200 * time.Millisecond)
		assert.NoError(t, g.Acquire(ctx, "sess-1", time.Now()))
	})

	t.Run("release of absent lock is a no-op", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		g := NewRedisGuard(rc.Client, 30*time.Second)
		assert.NoError(t, g.Release(ctx, "never-held"))
	})
}
