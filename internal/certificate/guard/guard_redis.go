package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"originstamp/pkg/platform/sentinel"
)

const keyPrefix = "issuance:lock:"

// RedisGuard serializes issuance across process instances using SET NX with
// a PX expiry equal to the grace window. Redis handles stale-lock expiry, so
// the now parameter is unused beyond the interface contract.
type RedisGuard struct {
	client *redis.Client
	window time.Duration
}

// NewRedisGuard creates a distributed issuance guard.
func NewRedisGuard(client *redis.Client, window time.Duration) *RedisGuard {
	return &RedisGuard{client: client, window: window}
}

// Acquire takes the session lock.
func (g *RedisGuard) Acquire(ctx context.Context, sessionID string, _ time.Time) error {
	ok, err := g.client.SetNX(ctx, keyPrefix+sessionID, "1", g.window).Result()
	if err != nil {
		return fmt.Errorf("acquiring issuance lock: %w", err)
	}
	if !ok {
		return sentinel.ErrLocked
	}
	return nil
}

// Release frees the session lock.
func (g *RedisGuard) Release(ctx context.Context, sessionID string) error {
	if err := g.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("releasing issuance lock: %w", err)
	}
	return nil
}
