// Package service implements certificate issuance and verification.
package service

import (
	"context"
	"errors"
	"log/slog"

	"originstamp/internal/certificate/guard"
	"originstamp/internal/certificate/metrics"
	"originstamp/internal/certificate/models"
	"originstamp/internal/certificate/ports"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/platform/sentinel"
	"originstamp/pkg/requestcontext"
)

// Store is the certificate ledger the service persists to.
type Store interface {
	Save(ctx context.Context, cert *models.Certificate) error
	FindByID(ctx context.Context, certificateID string) (*models.Certificate, error)
	ListByOwner(ctx context.Context, username string) ([]*models.Certificate, error)
	ListBySession(ctx context.Context, sessionID string) ([]*models.Certificate, error)
	Count(ctx context.Context) (int, error)
	Execute(ctx context.Context, certificateID string, validate func(*models.Certificate) error, mutate func(*models.Certificate)) error
}

// Service orchestrates issuance, verification and certificate reads.
type Service struct {
	store       Store
	guard       guard.Guard
	sessions    ports.SessionDirectory
	tiers       ports.TierDirectory
	permissions ports.PermissionChecker
	logger      *slog.Logger
	metrics     *metrics.Metrics
	audit       ports.AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(p ports.AuditPublisher) Option {
	return func(s *Service) {
		s.audit = p
	}
}

func New(
	store Store,
	g guard.Guard,
	sessions ports.SessionDirectory,
	tiers ports.TierDirectory,
	permissions ports.PermissionChecker,
	opts ...Option,
) (*Service, error) {
	if store == nil || g == nil || sessions == nil || tiers == nil || permissions == nil {
		return nil, errors.New("certificate service: missing dependency")
	}
	s := &Service{
		store:       store,
		guard:       g,
		sessions:    sessions,
		tiers:       tiers,
		permissions: permissions,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get returns a certificate by ID.
func (s *Service) Get(ctx context.Context, certificateID string) (*models.Certificate, error) {
	if certificateID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "certificate_id cannot be empty")
	}
	cert, err := s.store.FindByID(ctx, certificateID)
	if err != nil {
		return nil, wrapStoreErr(err, "certificate")
	}
	return cert, nil
}

// ListByOwner returns all certificates issued to a user.
func (s *Service) ListByOwner(ctx context.Context, username string) ([]*models.Certificate, error) {
	if username == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "username cannot be empty")
	}
	certs, err := s.store.ListByOwner(ctx, username)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing certificates")
	}
	return certs, nil
}

// ListBySession returns every certificate issued for a session.
func (s *Service) ListBySession(ctx context.Context, sessionID string) ([]*models.Certificate, error) {
	if sessionID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "session_id cannot be empty")
	}
	certs, err := s.store.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing certificates")
	}
	return certs, nil
}

// Count returns the total number of issued certificates.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "counting certificates")
	}
	return n, nil
}

// Verify checks a certificate's validity at the request time. Expired or
// inactive certificates verify as invalid with score zero; the certificate
// itself is untouched.
func (s *Service) Verify(ctx context.Context, certificateID string) (*models.VerificationOutcome, error) {
	cert, err := s.Get(ctx, certificateID)
	if err != nil {
		if s.metrics != nil && dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.metrics.IncrementVerifications("not_found")
		}
		return nil, err
	}

	now := requestcontext.Now(ctx)
	outcome := &models.VerificationOutcome{
		CertificateID: cert.CertificateID,
		CheckedAt:     now,
	}

	switch {
	case cert.Expired(now):
		outcome.Reason = models.ReasonExpired
	case cert.Status != models.StatusActive:
		outcome.Reason = models.ReasonInactiveStatus
	default:
		outcome.Valid = true
		outcome.Score = cert.Scores.Verification
		outcome.VerificationHash = cert.VerificationHash
		outcome.LedgerTxHash = cert.LedgerTxHash
	}

	if s.metrics != nil {
		result := "invalid"
		if outcome.Valid {
			result = "valid"
		}
		s.metrics.IncrementVerifications(result)
	}
	return outcome, nil
}

func wrapStoreErr(err error, noun string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, noun+" not found")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "reading "+noun)
}
