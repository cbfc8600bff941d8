// Package token issues and validates the HS256 bearer tokens returned by
// login. The maker doubles as the auth middleware's JWTValidator.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"originstamp/pkg/platform/middleware/auth"
)

// Claims extends the registered JWT claims with the account username.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Maker signs and validates bearer tokens with a shared secret.
type Maker struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

type Option func(*Maker)

// WithClock replaces the clock expiry validation runs against.
func WithClock(now func() time.Time) Option {
	return func(m *Maker) {
		m.now = now
	}
}

func NewMaker(secretKey string, ttl time.Duration, opts ...Option) *Maker {
	m := &Maker{secretKey: secretKey, tokenTTL: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GenerateToken creates a signed token for the username.
func (m *Maker) GenerateToken(username string, now time.Time) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// ValidateToken parses and verifies a token, returning the middleware claims.
func (m *Maker) ValidateToken(tokenStr string) (*auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &auth.Claims{Username: claims.Username, JTI: claims.ID}, nil
}
