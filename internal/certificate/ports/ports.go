// Package ports defines shared interfaces for the certificate module.
// Interfaces are placed here when consumed by multiple services to avoid duplication.
package ports

import (
	"context"
	"log/slog"
	"time"

	sessionmodels "originstamp/internal/session/models"
	submodels "originstamp/internal/subscription/models"
	"originstamp/pkg/platform/audit"
	request "originstamp/pkg/platform/middleware/request"
)

// AuditPublisher emits audit events for security-relevant operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// SessionDirectory exposes the session lookups issuance needs.
type SessionDirectory interface {
	// FindByID returns the session or sentinel.ErrNotFound.
	FindByID(ctx context.Context, sessionID string) (*sessionmodels.Session, error)
}

// TierDirectory resolves a user's current subscription tier.
//
// Callers must resolve the tier at decision time rather than caching it: a
// tier change between request and decision must be honored.
type TierDirectory interface {
	GetTier(ctx context.Context, username string) (submodels.Tier, error)
}

// PermissionChecker answers whether a user may create certificates.
// Users with no permission record default to allowed.
type PermissionChecker interface {
	MayCreateCertificates(ctx context.Context, username string) (bool, error)
}

// LogAudit is a shared helper for logging audit events across services.
// It logs to both the structured logger and the audit publisher if available.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event audit.Event, attrs ...any) {
	if requestID := request.GetRequestID(ctx); requestID != "" {
		event.RequestID = requestID
		attrs = append(attrs, "request_id", requestID)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	args := append(attrs, "event", event.Action, "log_type", "audit")

	if logger != nil {
		logger.InfoContext(ctx, event.Action, args...)
	}

	if publisher == nil {
		return
	}
	if err := publisher.Emit(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}
