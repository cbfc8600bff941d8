package service

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	certmodels "originstamp/internal/certificate/models"
	"originstamp/internal/certificate/ports"
	"originstamp/internal/nft/models"
	sessionmodels "originstamp/internal/session/models"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/platform/audit"
	"originstamp/pkg/platform/sentinel"
	"originstamp/pkg/requestcontext"
)

const (
	tokenBaseURL        = "https://nft.originstamp.app"
	maxCertificateIDLen = 100
)

// TokenURI returns the deterministic metadata URI for a token ID.
func TokenURI(tokenID uint64) string {
	return fmt.Sprintf("%s/nft/%d/metadata", tokenBaseURL, tokenID)
}

// MintFromCertificate mints the single token a certificate may carry and
// links it back to the certificate.
//
// Minting is all-or-nothing: the token insert and the certificate link-back
// form one logical transaction. When the link-back fails the inserted token
// is removed again; the consumed token ID is not reused.
func (s *Service) MintFromCertificate(ctx context.Context, certificateID string, recipient *models.Account) (*models.Token, error) {
	token, err := s.mintFromCertificate(ctx, certificateID, recipient)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementMintFailures(string(dErrors.CodeOf(err)))
		}
		return nil, err
	}

	s.recordMint(ctx, token)
	return token, nil
}

func (s *Service) mintFromCertificate(ctx context.Context, certificateID string, recipient *models.Account) (*models.Token, error) {
	caller := requestcontext.Caller(ctx)
	if caller == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if certificateID == "" || len(certificateID) > maxCertificateIDLen {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid certificate_id")
	}

	to := models.Account{Owner: caller}
	if recipient != nil {
		to = *recipient
	}
	if to.Owner == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "recipient owner cannot be empty")
	}

	cert, err := s.certs.FindByID(ctx, certificateID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "certificate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "reading certificate")
	}
	if cert.OwnerUsername != caller {
		return nil, dErrors.New(dErrors.CodeForbidden, "certificate belongs to another user")
	}
	if cert.Status != certmodels.StatusActive {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"certificate in status %q cannot be minted", cert.Status)
	}
	if cert.NFTLink != nil {
		return nil, dErrors.New(dErrors.CodeConflict, "NFT already generated for this certificate")
	}

	if err := s.checkMintingTier(ctx, caller); err != nil {
		return nil, err
	}

	session, err := s.sessions.FindByID(ctx, cert.SessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "session not found for minting")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "loading session")
	}

	tokenID, err := s.tokens.NextTokenID(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "allocating token id")
	}

	now := requestcontext.Now(ctx)
	token := &models.Token{
		ID:        tokenID,
		Owner:     to,
		Metadata:  certificateTokenMetadata(cert, session, tokenID, now),
		CreatedAt: now,
		SessionID: cert.SessionID,
	}

	commit := func() error {
		if err := s.tokens.Insert(ctx, token); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "persisting token")
		}
		err := s.certs.Execute(ctx, certificateID,
			func(c *certmodels.Certificate) error {
				if c.NFTLink != nil {
					return sentinel.ErrConflict
				}
				return nil
			},
			func(c *certmodels.Certificate) {
				c.NFTLink = &certmodels.NFTLink{TokenID: tokenID, TokenURI: TokenURI(tokenID)}
			},
		)
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Wrap(err, dErrors.CodeConflict, "NFT already generated for this certificate")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "linking token to certificate")
		}
		return nil
	}
	compensate := func() {
		if err := s.tokens.Remove(ctx, tokenID); err != nil {
			s.logger.ErrorContext(ctx, "failed to roll back minted token",
				"token_id", tokenID, "error", err)
			return
		}
		if s.metrics != nil {
			s.metrics.IncrementRollbacks()
		}
		ports.LogAudit(ctx, s.logger, s.audit, audit.Event{
			Category: audit.CategorySecurity,
			Username: caller,
			Action:   audit.ActionNFTMintRolledBack,
			Resource: certificateID,
		},
			"token_id", tokenID,
			"certificate_id", certificateID,
		)
	}

	if err := commit(); err != nil {
		compensate()
		return nil, err
	}
	return token, nil
}

// MintFromSession mints a token directly from a session, without a
// certificate. The session owner only; tier gating matches certificate
// minting.
func (s *Service) MintFromSession(ctx context.Context, req models.MintRequest) (*models.Token, error) {
	token, err := s.mintFromSession(ctx, req)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementMintFailures(string(dErrors.CodeOf(err)))
		}
		return nil, err
	}

	s.recordMint(ctx, token)
	return token, nil
}

func (s *Service) mintFromSession(ctx context.Context, req models.MintRequest) (*models.Token, error) {
	caller := requestcontext.Caller(ctx)
	if caller == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if req.SessionID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "session_id cannot be empty")
	}

	to := req.Recipient
	if to.Owner == "" {
		to = models.Account{Owner: caller}
	}

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

	if err := s.checkMintingTier(ctx, caller); err != nil {
		return nil, err
	}

	tokenID, err := s.tokens.NextTokenID(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "allocating token id")
	}

	now := requestcontext.Now(ctx)
	token := &models.Token{
		ID:        tokenID,
		Owner:     to,
		Metadata:  sessionTokenMetadata(session, req.AdditionalAttributes, tokenID, now),
		CreatedAt: now,
		SessionID: req.SessionID,
	}
	if err := s.tokens.Insert(ctx, token); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persisting token")
	}
	return token, nil
}

// checkMintingTier reads the caller's tier fresh and rejects tiers without
// minting rights, naming the cheapest tier that has them.
func (s *Service) checkMintingTier(ctx context.Context, username string) error {
	tier, err := s.tiers.GetTier(ctx, username)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "resolving subscription tier")
	}
	if tier.Limits().NFTMintingAllowed {
		return nil
	}
	return dErrors.Newf(dErrors.CodeForbidden,
		"NFT minting is not available on the %s tier, upgrade to the %s tier or higher", tier, tier.Next())
}

func (s *Service) recordMint(ctx context.Context, token *models.Token) {
	if s.metrics != nil {
		s.metrics.IncrementMinted()
		if supply, err := s.tokens.TotalSupply(ctx); err == nil {
			s.metrics.SetTotalSupply(supply)
		}
	}
	ports.LogAudit(ctx, s.logger, s.audit, audit.Event{
		Category: audit.CategoryCompliance,
		Username: token.Owner.Owner,
		Action:   audit.ActionNFTMinted,
		Resource: strconv.FormatUint(token.ID, 10),
		Decision: "minted",
	},
		"token_id", token.ID,
		"session_id", token.SessionID,
		"owner", token.Owner.Owner,
	)
}

// certificateTokenMetadata assembles the attribute list for a certificate
// mint. Order is fixed: certificate identifiers and scores, the creation
// metadata block, ledger facts, then progress photos in upload order.
func certificateTokenMetadata(cert *certmodels.Certificate, session *sessionmodels.Session, tokenID uint64, now time.Time) models.TokenMetadata {
	attrs := []models.Attribute{
		{TraitType: "certificate_id", Value: cert.CertificateID},
		{TraitType: "art_title", Value: cert.Title},
		{TraitType: "artist", Value: cert.OwnerUsername},
		{TraitType: "description", Value: cert.Description},
		{TraitType: "verification_hash", Value: cert.VerificationHash},
		{TraitType: "verification_score", Value: strconv.Itoa(cert.Scores.Verification)},
		{TraitType: "authenticity_rating", Value: strconv.Itoa(cert.Scores.Authenticity)},
		{TraitType: "provenance_score", Value: strconv.Itoa(cert.Scores.Provenance)},
		{TraitType: "community_trust", Value: strconv.Itoa(cert.Scores.CommunityTrust)},
		{TraitType: "creation_duration", Value: cert.Metadata.CreationDuration},
		{TraitType: "total_actions", Value: strconv.Itoa(cert.Metadata.TotalActions)},
		{TraitType: "file_format", Value: cert.Metadata.FileFormat},
		{TraitType: "creation_tools", Value: strings.Join(cert.Metadata.CreationTools, ", ")},
		{TraitType: "ledger", Value: cert.Ledger},
		{TraitType: "token_standard", Value: cert.TokenStandard},
		{TraitType: "issuer", Value: cert.Issuer},
		{TraitType: "issue_date", Value: cert.IssueDate.Format(time.RFC3339)},
		{TraitType: "photo_count", Value: strconv.Itoa(len(session.PhotoRefs))},
		{TraitType: "session_id", Value: cert.SessionID},
		{TraitType: "token_hash", Value: tokenHash(tokenID, cert.SessionID, now)},
	}
	for i, photo := range session.PhotoRefs {
		attrs = append(attrs, models.Attribute{
			TraitType: fmt.Sprintf("progress_photo_%d", i+1),
			Value:     photo,
		})
	}

	// The last progress photo shows the finished piece.
	var image string
	if len(session.PhotoRefs) > 0 {
		image = session.PhotoRefs[len(session.PhotoRefs)-1]
	}

	return models.TokenMetadata{
		Name: fmt.Sprintf("%s - Certificate NFT #%d", cert.Title, tokenID),
		Description: fmt.Sprintf(
			"Digital certificate NFT for artwork: %s. This NFT represents the authenticated certificate with verification score %d and authenticity rating %d.",
			cert.Title, cert.Scores.Verification, cert.Scores.Authenticity),
		Image:      image,
		Attributes: attrs,
	}
}

func sessionTokenMetadata(session *sessionmodels.Session, additional []models.Attribute, tokenID uint64, now time.Time) models.TokenMetadata {
	attrs := []models.Attribute{
		{TraitType: "session_id", Value: session.SessionID},
		{TraitType: "artist", Value: session.OwnerUsername},
		{TraitType: "art_title", Value: session.Title},
		{TraitType: "created_at", Value: now.Format(time.RFC3339)},
		{TraitType: "token_hash", Value: tokenHash(tokenID, session.SessionID, now)},
		{TraitType: "photo_count", Value: strconv.Itoa(len(session.PhotoRefs))},
	}
	attrs = append(attrs, additional...)
	for i, photo := range session.PhotoRefs {
		attrs = append(attrs, models.Attribute{
			TraitType: fmt.Sprintf("photo_%d", i+1),
			Value:     photo,
		})
	}

	// Session mints lead with the first photo, showing where the work began.
	var image string
	if len(session.PhotoRefs) > 0 {
		image = session.PhotoRefs[0]
	}

	return models.TokenMetadata{
		Name:        fmt.Sprintf("%s - #%d", session.Title, tokenID),
		Description: session.Description,
		Image:       image,
		Attributes:  attrs,
	}
}

func tokenHash(tokenID uint64, sessionID string, now time.Time) string {
	h := sha256.New()
	var idBytes [8]byte
	binary.BigEndian.PutUint64(idBytes[:], tokenID)
	h.Write(idBytes[:])
	h.Write([]byte(sessionID))
	var tsBytes [8]byte
	binary.BigEndian.PutUint64(tsBytes[:], uint64(now.UnixNano()))
	h.Write(tsBytes[:])
	return fmt.Sprintf("%x", h.Sum(nil))
}
