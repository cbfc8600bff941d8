package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"originstamp/internal/session/models"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/platform/sentinel"
	"originstamp/pkg/requestcontext"
)

// Store is the session persistence the service drives. The certificate and
// nft services consume sessions read-only through their own narrower ports.
type Store interface {
	Save(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID string) (*models.Session, error)
	ListByOwner(ctx context.Context, username string) ([]*models.Session, error)
	Execute(ctx context.Context, sessionID string, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error)
	Count(ctx context.Context) (int, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	svc := &Service{store: store}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Create opens a new draft session owned by the caller.
func (s *Service) Create(ctx context.Context, title, description string) (*models.Session, error) {
	caller := requestcontext.Caller(ctx)
	if caller == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}

	now := requestcontext.Now(ctx)
	session := &models.Session{
		SessionID:     uuid.NewString(),
		OwnerUsername: caller,
		Title:         title,
		Description:   strings.TrimSpace(description),
		PhotoRefs:     []string{},
		Status:        models.StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "session created",
			"session_id", session.SessionID,
			"username", caller,
		)
	}
	return session, nil
}

// RecordPhoto appends an uploaded photo reference, preserving upload order.
func (s *Service) RecordPhoto(ctx context.Context, sessionID, photoRef string, sizeBytes uint64) (*models.Session, error) {
	if photoRef == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "photo reference is required")
	}
	now := requestcontext.Now(ctx)
	session, err := s.store.Execute(ctx, sessionID,
		s.requireOwner(ctx),
		func(session *models.Session) {
			session.PhotoRefs = append(session.PhotoRefs, photoRef)
			session.UploadedBytes += sizeBytes
			session.UpdatedAt = now
		},
	)
	if err != nil {
		return nil, wrapSessionErr(err)
	}
	return session, nil
}

// RemovePhoto deletes a photo reference from the session. Removing an absent
// reference is a no-op, matching the append-only upload tracker it backs.
func (s *Service) RemovePhoto(ctx context.Context, sessionID, photoRef string) (*models.Session, error) {
	now := requestcontext.Now(ctx)
	session, err := s.store.Execute(ctx, sessionID,
		s.requireOwner(ctx),
		func(session *models.Session) {
			refs := session.PhotoRefs[:0]
			for _, ref := range session.PhotoRefs {
				if ref != photoRef {
					refs = append(refs, ref)
				}
			}
			session.PhotoRefs = refs
			session.UpdatedAt = now
		},
	)
	if err != nil {
		return nil, wrapSessionErr(err)
	}
	return session, nil
}

// UpdateStatus moves the session to a new lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, sessionID string, status models.Status) (*models.Session, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid status")
	}
	now := requestcontext.Now(ctx)
	session, err := s.store.Execute(ctx, sessionID,
		s.requireOwner(ctx),
		func(session *models.Session) {
			session.Status = status
			session.UpdatedAt = now
		},
	)
	if err != nil {
		return nil, wrapSessionErr(err)
	}
	return session, nil
}

// Get returns a session by ID.
func (s *Service) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, wrapSessionErr(err)
	}
	return session, nil
}

// ListByOwner returns the user's sessions in creation order.
func (s *Service) ListByOwner(ctx context.Context, username string) ([]*models.Session, error) {
	sessions, err := s.store.ListByOwner(ctx, username)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sessions")
	}
	return sessions, nil
}

// Count returns the total number of sessions.
func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count sessions")
	}
	return count, nil
}

// requireOwner restricts session mutations to the session owner.
func (s *Service) requireOwner(ctx context.Context) func(*models.Session) error {
	caller := requestcontext.Caller(ctx)
	return func(session *models.Session) error {
		if caller == "" {
			return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
		}
		if session.OwnerUsername != caller {
			return dErrors.New(dErrors.CodeForbidden, "session belongs to another user")
		}
		return nil
	}
}

func wrapSessionErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "session not found")
	}
	// Validation callbacks already return coded errors; pass them through.
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "session store failure")
}
