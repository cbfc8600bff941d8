// Package redis builds the client behind the Redis-backed issuance guard.
// The deployment is optional: without a URL the service runs on the
// in-memory guard instead.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"originstamp/internal/platform/config"
)

// Connect dials Redis and verifies the connection with a ping, returning a
// ready *redis.Client. A nil client with a nil error means no URL was
// configured and the caller should fall back to in-memory locking.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
