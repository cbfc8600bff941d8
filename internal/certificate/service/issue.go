package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"originstamp/internal/certificate/models"
	"originstamp/internal/certificate/ports"
	"originstamp/internal/certificate/validate"
	submodels "originstamp/internal/subscription/models"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/platform/audit"
	"originstamp/pkg/platform/sentinel"
	"originstamp/pkg/requestcontext"
)

const (
	issuerName    = "OriginStamp Creative Platform"
	ledgerName    = "OriginStamp Ledger"
	tokenStandard = "OS-721"
	verifyBaseURL = "https://verify.originstamp.app"

	certificateValidity = 10 // years

	// Size estimate per photo when the caller supplies no file sizes.
	fallbackPhotoSizeMB = 5

	idSaveAttempts = 3
)

// Issue runs the full issuance flow for the authenticated caller. The
// per-session lock is held for the duration and released on every exit path.
func (s *Service) Issue(ctx context.Context, req models.IssueRequest) (*models.Certificate, error) {
	start := time.Now()

	cert, err := s.issue(ctx, req)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementFailures(string(dErrors.CodeOf(err)))
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementIssued()
		s.metrics.ObserveIssuanceDuration(time.Since(start).Seconds())
	}
	ports.LogAudit(ctx, s.logger, s.audit, audit.Event{
		Category: audit.CategoryCompliance,
		Username: cert.OwnerUsername,
		Action:   audit.ActionCertificateIssued,
		Resource: cert.CertificateID,
		Decision: "issued",
	},
		"certificate_id", cert.CertificateID,
		"session_id", cert.SessionID,
		"username", cert.OwnerUsername,
	)
	return cert, nil
}

func (s *Service) issue(ctx context.Context, req models.IssueRequest) (*models.Certificate, error) {
	caller := requestcontext.Caller(ctx)
	if caller == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	req, err := validate.IssueRequest(req)
	if err != nil {
		return nil, err
	}
	if req.Username != caller {
		return nil, dErrors.New(dErrors.CodeForbidden, "certificates can only be issued for your own sessions")
	}

	allowed, err := s.permissions.MayCreateCertificates(ctx, caller)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "checking certificate permission")
	}
	if !allowed {
		return nil, dErrors.New(dErrors.CodeForbidden, "certificate creation is disabled for this account")
	}

	now := requestcontext.Now(ctx)

	if err := s.guard.Acquire(ctx, req.SessionID, now); err != nil {
		if errors.Is(err, sentinel.ErrLocked) {
			if s.metrics != nil {
				s.metrics.IncrementLockContended()
			}
			return nil, dErrors.New(dErrors.CodeConflict, "certificate issuance already in progress for this session")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "acquiring issuance lock")
	}
	defer func() {
		if err := s.guard.Release(ctx, req.SessionID); err != nil {
			s.logger.WarnContext(ctx, "failed to release issuance lock",
				"session_id", req.SessionID, "error", err)
		}
	}()

	session, err := s.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "loading session")
	}
	if session.OwnerUsername != caller {
		return nil, dErrors.New(dErrors.CodeForbidden, "session belongs to another user")
	}
	if !session.Status.Certifiable() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"session in status %q cannot be certified", session.Status)
	}
	if req.PhotoCount != len(session.PhotoRefs) {
		return nil, dErrors.Newf(dErrors.CodeValidation,
			"photo_count %d does not match the %d photos on record", req.PhotoCount, len(session.PhotoRefs))
	}

	// The tier is read here, inside the lock, so an upgrade or downgrade
	// between request and decision is honored.
	tier, err := s.tiers.GetTier(ctx, caller)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolving subscription tier")
	}
	if err := checkQuota(req, tier); err != nil {
		return nil, err
	}

	cert := buildCertificate(req, now)
	for attempt := 0; ; attempt++ {
		err := s.store.Save(ctx, cert)
		if err == nil {
			break
		}
		if errors.Is(err, sentinel.ErrConflict) && attempt < idSaveAttempts-1 {
			cert.CertificateID = certificateID(req.SessionID)
			cert.QRCodeData = verificationURL(cert.CertificateID)
			cert.VerificationURL = cert.QRCodeData
			continue
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persisting certificate")
	}
	return cert, nil
}

func checkQuota(req models.IssueRequest, tier submodels.Tier) error {
	limits := tier.Limits()

	if req.PhotoCount > limits.MaxPhotos {
		return quotaErr("photo count", req.PhotoCount, limits.MaxPhotos, tier)
	}

	totalMB := estimatedSizeMB(req)
	if totalMB > limits.MaxTotalSizeMB {
		return quotaErr("total upload size (MB)", totalMB, limits.MaxTotalSizeMB, tier)
	}
	return nil
}

// estimatedSizeMB sums caller-supplied file sizes, rounding up to whole
// megabytes, and falls back to a flat per-photo estimate when none are given.
// The sizes are untrusted input, so the sum saturates instead of wrapping.
func estimatedSizeMB(req models.IssueRequest) int {
	if len(req.FileSizes) == 0 {
		return req.PhotoCount * fallbackPhotoSizeMB
	}
	var totalBytes uint64
	for _, size := range req.FileSizes {
		if size > math.MaxUint64-totalBytes {
			totalBytes = math.MaxUint64
			break
		}
		totalBytes += size
	}
	const mb = 1 << 20
	totalMB := totalBytes / mb
	if totalBytes%mb != 0 {
		totalMB++
	}
	if totalMB > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(totalMB)
}

func quotaErr(what string, current, limit int, tier submodels.Tier) error {
	next := tier.Next()
	if next == tier {
		return dErrors.Newf(dErrors.CodeQuotaExceeded,
			"%s %d exceeds the %s tier limit of %d", what, current, tier, limit)
	}
	return dErrors.Newf(dErrors.CodeQuotaExceeded,
		"%s %d exceeds the %s tier limit of %d, upgrade to the %s tier to continue",
		what, current, tier, limit, next)
}

func buildCertificate(req models.IssueRequest, now time.Time) *models.Certificate {
	id := certificateID(req.SessionID)
	verification := hashHex(req.SessionID, req.Username, req.Title, now.Format(time.RFC3339Nano))
	ledgerTx := hashHex(id, verification, now.Format(time.RFC3339Nano))
	url := verificationURL(id)
	photos := req.PhotoCount

	return &models.Certificate{
		CertificateID:    id,
		SessionID:        req.SessionID,
		OwnerUsername:    req.Username,
		Title:            req.Title,
		Description:      req.Description,
		IssueDate:        now,
		ExpiryDate:       now.AddDate(certificateValidity, 0, 0),
		VerificationHash: verification,
		LedgerTxHash:     ledgerTx,
		QRCodeData:       url,
		VerificationURL:  url,
		CertificateType:  "standard",
		Issuer:           issuerName,
		Ledger:           ledgerName,
		TokenStandard:    tokenStandard,
		Status:           models.StatusActive,
		Scores: models.Scores{
			Verification:   85 + min(photos*2, 15),
			Authenticity:   90 + min(photos, 10),
			Provenance:     88 + min(photos, 12),
			CommunityTrust: 82 + min(photos, 18),
		},
		Metadata: models.Metadata{
			CreationDuration: fmt.Sprintf("%d hours %d minutes",
				req.CreationDurationMinutes/60, req.CreationDurationMinutes%60),
			TotalActions:  photos,
			TotalSize:     fmt.Sprintf("%d MB", 10+photos*2),
			FileFormat:    req.FileFormat,
			CreationTools: req.CreationTools,
		},
	}
}

// certificateID builds "CERT-{SESSION}-{suffix}" with a random 12-character
// suffix. The session portion is upper-cased for display.
func certificateID(sessionID string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	return fmt.Sprintf("CERT-%s-%s", strings.ToUpper(sessionID), suffix)
}

func verificationURL(certificateID string) string {
	return fmt.Sprintf("%s/verify/%s", verifyBaseURL, certificateID)
}

func hashHex(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("0x%x", sum)
}
