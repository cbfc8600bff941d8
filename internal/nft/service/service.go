// Package service implements NFT minting, transfers and ICRC-7 style reads.
package service

import (
	"context"
	"errors"
	"log/slog"

	certmodels "originstamp/internal/certificate/models"
	"originstamp/internal/certificate/ports"
	"originstamp/internal/nft/metrics"
	"originstamp/internal/nft/models"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/platform/audit"
	"originstamp/pkg/platform/sentinel"
	"originstamp/pkg/requestcontext"
)

// TokenStore is the token ledger the service persists to.
type TokenStore interface {
	NextTokenID(ctx context.Context) (uint64, error)
	Insert(ctx context.Context, token *models.Token) error
	Remove(ctx context.Context, tokenID uint64) error
	FindByID(ctx context.Context, tokenID uint64) (*models.Token, error)
	TokenIDs(ctx context.Context, prev, take *uint64) ([]uint64, error)
	TokensOf(ctx context.Context, account models.Account, prev, take *uint64) ([]uint64, error)
	BalanceOf(ctx context.Context, accounts []models.Account) ([]uint64, error)
	OwnerOf(ctx context.Context, tokenIDs []uint64) ([]*models.Account, error)
	MetadataOf(ctx context.Context, tokenIDs []uint64) ([]*models.TokenMetadata, error)
	ListBySession(ctx context.Context, sessionID string) ([]*models.Token, error)
	ListByOwner(ctx context.Context, owner string) ([]*models.Token, error)
	TotalSupply(ctx context.Context) (uint64, error)
	Collection(ctx context.Context) (models.CollectionMetadata, error)
	UpdateCollection(ctx context.Context, name, description, image string, maxSupply *uint64) error
	Execute(ctx context.Context, tokenID uint64, validate func(*models.Token) error, mutate func(*models.Token)) error
}

// CertificateLedger is the slice of the certificate store minting needs:
// reading a certificate and atomically linking the minted token back to it.
type CertificateLedger interface {
	FindByID(ctx context.Context, certificateID string) (*certmodels.Certificate, error)
	Execute(ctx context.Context, certificateID string, validate func(*certmodels.Certificate) error, mutate func(*certmodels.Certificate)) error
}

// Service orchestrates minting and token reads.
type Service struct {
	tokens   TokenStore
	certs    CertificateLedger
	sessions ports.SessionDirectory
	tiers    ports.TierDirectory
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    ports.AuditPublisher
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
	tokens TokenStore,
	certs CertificateLedger,
	sessions ports.SessionDirectory,
	tiers ports.TierDirectory,
	opts ...Option,
) (*Service, error) {
	if tokens == nil || certs == nil || sessions == nil || tiers == nil {
		return nil, errors.New("nft service: missing dependency")
	}
	s := &Service{
		tokens:   tokens,
		certs:    certs,
		sessions: sessions,
		tiers:    tiers,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Token returns full token details.
func (s *Service) Token(ctx context.Context, tokenID uint64) (*models.Token, error) {
	token, err := s.tokens.FindByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "token not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "reading token")
	}
	return token, nil
}

// Tokens lists token IDs ascending with prev/take pagination.
func (s *Service) Tokens(ctx context.Context, prev, take *uint64) ([]uint64, error) {
	ids, err := s.tokens.TokenIDs(ctx, prev, take)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing tokens")
	}
	return ids, nil
}

// TokensOf lists an account's token IDs ascending with prev/take pagination.
func (s *Service) TokensOf(ctx context.Context, account models.Account, prev, take *uint64) ([]uint64, error) {
	ids, err := s.tokens.TokensOf(ctx, account, prev, take)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing tokens")
	}
	return ids, nil
}

// BalanceOf returns token counts for accounts, positionally.
func (s *Service) BalanceOf(ctx context.Context, accounts []models.Account) ([]uint64, error) {
	balances, err := s.tokens.BalanceOf(ctx, accounts)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "reading balances")
	}
	return balances, nil
}

// OwnerOf returns token owners, positionally, nil for unknown IDs.
func (s *Service) OwnerOf(ctx context.Context, tokenIDs []uint64) ([]*models.Account, error) {
	owners, err := s.tokens.OwnerOf(ctx, tokenIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "reading owners")
	}
	return owners, nil
}

// TokenMetadata returns token metadata, positionally, nil for unknown IDs.
func (s *Service) TokenMetadata(ctx context.Context, tokenIDs []uint64) ([]*models.TokenMetadata, error) {
	out, err := s.tokens.MetadataOf(ctx, tokenIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "reading token metadata")
	}
	return out, nil
}

// SessionTokens returns the tokens minted from a session.
func (s *Service) SessionTokens(ctx context.Context, sessionID string) ([]*models.Token, error) {
	tokens, err := s.tokens.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing session tokens")
	}
	return tokens, nil
}

// UserTokens returns all tokens a user holds across subaccounts.
func (s *Service) UserTokens(ctx context.Context, owner string) ([]*models.Token, error) {
	tokens, err := s.tokens.ListByOwner(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing user tokens")
	}
	return tokens, nil
}

// Collection returns the collection metadata.
func (s *Service) Collection(ctx context.Context) (models.CollectionMetadata, error) {
	col, err := s.tokens.Collection(ctx)
	if err != nil {
		return models.CollectionMetadata{}, dErrors.Wrap(err, dErrors.CodeInternal, "reading collection")
	}
	return col, nil
}

// TotalSupply returns the number of live tokens.
func (s *Service) TotalSupply(ctx context.Context) (uint64, error) {
	supply, err := s.tokens.TotalSupply(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "reading supply")
	}
	return supply, nil
}

// UpdateCollection replaces the descriptive collection fields.
func (s *Service) UpdateCollection(ctx context.Context, name, description, image string, maxSupply *uint64) error {
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "collection name cannot be empty")
	}
	if err := s.tokens.UpdateCollection(ctx, name, description, image, maxSupply); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "updating collection")
	}
	return nil
}

// CertificateTokenMetadata returns the metadata of the token minted from a
// certificate, or not-found when no token has been minted.
func (s *Service) CertificateTokenMetadata(ctx context.Context, certificateID string) (*models.TokenMetadata, error) {
	cert, err := s.certs.FindByID(ctx, certificateID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "certificate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "reading certificate")
	}
	if cert.NFTLink == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no NFT minted for this certificate")
	}

	token, err := s.Token(ctx, cert.NFTLink.TokenID)
	if err != nil {
		return nil, err
	}
	return &token.Metadata, nil
}

// Transfer moves tokens between accounts. Each request in the batch is
// checked and applied independently; one failure does not stop the rest.
// Only the current owner may move a token.
func (s *Service) Transfer(ctx context.Context, requests []models.TransferRequest) []models.TransferResponse {
	caller := requestcontext.Caller(ctx)

	responses := make([]models.TransferResponse, 0, len(requests))
	for _, req := range requests {
		resp := models.TransferResponse{TokenID: req.TokenID}

		switch {
		case caller == "":
			resp.Error = "authentication required"
		case req.From.Owner != caller:
			resp.Error = "caller is not the owner"
		case req.To.Owner == "":
			resp.Error = "recipient owner cannot be empty"
		default:
			err := s.tokens.Execute(ctx, req.TokenID,
				func(t *models.Token) error {
					if !t.Owner.Equals(req.From) {
						return sentinel.ErrConflict
					}
					return nil
				},
				func(t *models.Token) { t.Owner = req.To },
			)
			switch {
			case errors.Is(err, sentinel.ErrNotFound):
				resp.Error = "token not found"
			case errors.Is(err, sentinel.ErrConflict):
				resp.Error = "token not owned by from account"
			case err != nil:
				resp.Error = "transfer failed"
			}
		}

		if s.metrics != nil {
			result := "ok"
			if resp.Error != "" {
				result = "rejected"
			}
			s.metrics.IncrementTransfers(result)
		}
		if resp.Error == "" {
			ports.LogAudit(ctx, s.logger, s.audit, audit.Event{
				Category: audit.CategoryCompliance,
				Username: caller,
				Action:   audit.ActionNFTTransferred,
				Decision: "transferred",
			},
				"token_id", req.TokenID,
				"to", req.To.Owner,
			)
		}
		responses = append(responses, resp)
	}
	return responses
}
