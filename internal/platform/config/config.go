package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	Redis         RedisConfig
	// LockGraceWindow bounds how long a session's issuance slot stays held
	// when the holder never releases it.
	LockGraceWindow time.Duration
}

// RedisConfig configures the optional Redis-backed issuance guard.
// An empty URL means the in-memory guard is used.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ORIGINSTAMP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	grace := 10 * time.Second
	if raw := os.Getenv("ISSUANCE_LOCK_GRACE"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			grace = d
		}
	}

	return Server{
		Addr:            addr,
		JWTSigningKey:   jwtSigningKey,
		LockGraceWindow: grace,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}
