package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"originstamp/internal/user/models"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/platform/sentinel"
	"originstamp/pkg/requestcontext"
)

// Store is the credential and permission persistence behind the service.
type Store interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	ListUsernames(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	FindPermissions(ctx context.Context, username string) (models.Permissions, bool, error)
	SavePermissions(ctx context.Context, perms models.Permissions) error
}

// TokenMaker issues bearer tokens on successful login.
type TokenMaker interface {
	GenerateToken(username string, now time.Time) (string, error)
}

type Service struct {
	store  Store
	tokens TokenMaker
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, tokens TokenMaker, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token maker is required")
	}
	svc := &Service{store: store, tokens: tokens}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, dErrors.New(dErrors.CodeValidation, "username and password are required")
	}
	if len(username) > 50 {
		return models.User{}, dErrors.New(dErrors.CodeValidation, "username must be 50 characters or less")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.User{}, dErrors.New(dErrors.CodeConflict, "username already exists")
		}
		return models.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "user registered",
			"username", username,
			"log_type", "audit",
		)
	}
	return user, nil
}

// Login verifies credentials and returns a signed bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", dErrors.New(dErrors.CodeValidation, "username and password are required")
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Same error as a bad password so login cannot enumerate accounts.
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "login failed",
				"username", username,
				"log_type", "audit",
			)
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.GenerateToken(username, requestcontext.Now(ctx))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return token, nil
}

// MayCreateCertificates reports whether the user is allowed to request
// certificate issuance. No permission record means default-allow.
func (s *Service) MayCreateCertificates(ctx context.Context, username string) (bool, error) {
	perms, ok, err := s.store.FindPermissions(ctx, username)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read permissions")
	}
	if !ok {
		return true, nil
	}
	return perms.CanCreateCertificates, nil
}

// SetPermissions records an explicit permission record for a user.
func (s *Service) SetPermissions(ctx context.Context, perms models.Permissions) error {
	if perms.Username == "" {
		return dErrors.New(dErrors.CodeBadRequest, "username is required")
	}
	if err := s.store.SavePermissions(ctx, perms); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save permissions")
	}
	return nil
}

// GetInfo returns the public account facts for a username.
func (s *Service) GetInfo(ctx context.Context, username string) (models.User, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.User{}, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return models.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	user.PasswordHash = ""
	return user, nil
}

// ListUsernames returns all registered usernames.
func (s *Service) ListUsernames(ctx context.Context) ([]string, error) {
	names, err := s.store.ListUsernames(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return names, nil
}

// Count returns the number of registered users.
func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count users")
	}
	return count, nil
}
