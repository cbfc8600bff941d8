package service

import (
	"context"
	"fmt"
	"log/slog"

	"originstamp/internal/subscription/models"
	dErrors "originstamp/pkg/domain-errors"
)

// Registry is the tier store consumed by this service and, through the
// certificate and nft ports, by the issuance and minting paths. Those paths
// must call GetTier fresh on every operation: tier changes land here
// concurrently (admin updates, coupon redemptions) and a cached value could
// let a downgraded user mint.
type Registry interface {
	GetTier(ctx context.Context, username string) (models.Tier, error)
	SetTier(ctx context.Context, username string, tier models.Tier) error
}

type Service struct {
	registry Registry
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(registry Registry, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("subscription registry is required")
	}
	svc := &Service{registry: registry}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// GetTier returns the user's current tier and its derived limits.
func (s *Service) GetTier(ctx context.Context, username string) (models.Tier, models.Limits, error) {
	if username == "" {
		return "", models.Limits{}, dErrors.New(dErrors.CodeBadRequest, "username is required")
	}
	tier, err := s.registry.GetTier(ctx, username)
	if err != nil {
		return "", models.Limits{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read subscription tier")
	}
	return tier, tier.Limits(), nil
}

// UpdateTier changes a user's tier (admin action or coupon redemption).
func (s *Service) UpdateTier(ctx context.Context, username string, tier models.Tier) error {
	if username == "" {
		return dErrors.New(dErrors.CodeBadRequest, "username is required")
	}
	if !tier.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid tier")
	}

	if err := s.registry.SetTier(ctx, username, tier); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update subscription tier")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "subscription tier updated",
			"username", username,
			"tier", tier,
			"log_type", "audit",
		)
	}
	return nil
}
