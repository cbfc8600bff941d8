// Package handler exposes the NFT HTTP surface.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"originstamp/internal/nft/models"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/platform/httputil"
)

// Service defines the NFT operations the handler needs.
type Service interface {
	MintFromCertificate(ctx context.Context, certificateID string, recipient *models.Account) (*models.Token, error)
	MintFromSession(ctx context.Context, req models.MintRequest) (*models.Token, error)
	Transfer(ctx context.Context, requests []models.TransferRequest) []models.TransferResponse
	Token(ctx context.Context, tokenID uint64) (*models.Token, error)
	Tokens(ctx context.Context, prev, take *uint64) ([]uint64, error)
	TokensOf(ctx context.Context, account models.Account, prev, take *uint64) ([]uint64, error)
	BalanceOf(ctx context.Context, accounts []models.Account) ([]uint64, error)
	OwnerOf(ctx context.Context, tokenIDs []uint64) ([]*models.Account, error)
	TokenMetadata(ctx context.Context, tokenIDs []uint64) ([]*models.TokenMetadata, error)
	SessionTokens(ctx context.Context, sessionID string) ([]*models.Token, error)
	UserTokens(ctx context.Context, owner string) ([]*models.Token, error)
	Collection(ctx context.Context) (models.CollectionMetadata, error)
	UpdateCollection(ctx context.Context, name, description, image string, maxSupply *uint64) error
	CertificateTokenMetadata(ctx context.Context, certificateID string) (*models.TokenMetadata, error)
}

// Handler handles NFT endpoints.
type Handler struct {
	logger *slog.Logger
	nfts   Service
}

// New creates an NFT Handler.
func New(nfts Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, nfts: nfts}
}

// Register mounts the authenticated NFT routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/certificates/{certificateID}/mint", h.handleMintFromCertificate)
	r.Post("/sessions/{sessionID}/mint", h.handleMintFromSession)
	r.Post("/nfts/transfer", h.handleTransfer)
	r.Put("/collection", h.handleUpdateCollection)
}

// RegisterPublic mounts the read-only routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/collection", h.handleCollection)
	r.Get("/nfts", h.handleListTokens)
	r.Get("/nfts/{tokenID}", h.handleToken)
	r.Post("/nfts/balance-of", h.handleBalanceOf)
	r.Post("/nfts/owner-of", h.handleOwnerOf)
	r.Post("/nfts/metadata", h.handleTokenMetadata)
	r.Post("/nfts/tokens-of", h.handleTokensOf)
	r.Get("/sessions/{sessionID}/nfts", h.handleSessionTokens)
	r.Get("/users/{username}/nfts", h.handleUserTokens)
	r.Get("/certificates/{certificateID}/nft-metadata", h.handleCertificateTokenMetadata)
}

type mintCertificateRequest struct {
	Recipient *models.Account `json:"recipient,omitempty"`
}

func (h *Handler) handleMintFromCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	certificateID := chi.URLParam(r, "certificateID")

	var req mintCertificateRequest
	if r.ContentLength > 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	token, err := h.nfts.MintFromCertificate(ctx, certificateID, req.Recipient)
	if err != nil {
		h.logger.WarnContext(ctx, "mint rejected",
			"certificate_id", certificateID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, token)
}

func (h *Handler) handleMintFromSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.MintRequest
	if r.ContentLength > 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	req.SessionID = chi.URLParam(r, "sessionID")

	token, err := h.nfts.MintFromSession(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "mint rejected",
			"session_id", req.SessionID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, token)
}

type transferRequest struct {
	Transfers []models.TransferRequest `json:"transfers"`
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if len(req.Transfers) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "transfers cannot be empty"))
		return
	}

	responses := h.nfts.Transfer(r.Context(), req.Transfers)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"results": responses})
}

type updateCollectionRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	MaxSupply   *uint64 `json:"max_supply,omitempty"`
}

func (h *Handler) handleUpdateCollection(w http.ResponseWriter, r *http.Request) {
	var req updateCollectionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.nfts.UpdateCollection(r.Context(), req.Name, req.Description, req.Image, req.MaxSupply); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCollection(w http.ResponseWriter, r *http.Request) {
	col, err := h.nfts.Collection(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, col)
}

func (h *Handler) handleListTokens(w http.ResponseWriter, r *http.Request) {
	prev, err := queryUint(r, "prev")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	take, err := queryUint(r, "take")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ids, err := h.nfts.Tokens(r.Context(), prev, take)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"token_ids": ids})
}

func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	tokenID, err := pathUint(r, "tokenID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	token, err := h.nfts.Token(r.Context(), tokenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, token)
}

type balanceOfRequest struct {
	Accounts []models.Account `json:"accounts"`
}

func (h *Handler) handleBalanceOf(w http.ResponseWriter, r *http.Request) {
	var req balanceOfRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	balances, err := h.nfts.BalanceOf(r.Context(), req.Accounts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"balances": balances})
}

type tokenIDsRequest struct {
	TokenIDs []uint64 `json:"token_ids"`
}

func (h *Handler) handleOwnerOf(w http.ResponseWriter, r *http.Request) {
	var req tokenIDsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	owners, err := h.nfts.OwnerOf(r.Context(), req.TokenIDs)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"owners": owners})
}

func (h *Handler) handleTokenMetadata(w http.ResponseWriter, r *http.Request) {
	var req tokenIDsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	metadata, err := h.nfts.TokenMetadata(r.Context(), req.TokenIDs)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"metadata": metadata})
}

type tokensOfRequest struct {
	Account models.Account `json:"account"`
	Prev    *uint64        `json:"prev,omitempty"`
	Take    *uint64        `json:"take,omitempty"`
}

func (h *Handler) handleTokensOf(w http.ResponseWriter, r *http.Request) {
	var req tokensOfRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	ids, err := h.nfts.TokensOf(r.Context(), req.Account, req.Prev, req.Take)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"token_ids": ids})
}

func (h *Handler) handleSessionTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.nfts.SessionTokens(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tokens": tokens})
}

func (h *Handler) handleUserTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.nfts.UserTokens(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tokens": tokens})
}

func (h *Handler) handleCertificateTokenMetadata(w http.ResponseWriter, r *http.Request) {
	meta, err := h.nfts.CertificateTokenMetadata(r.Context(), chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, meta)
}

func pathUint(r *http.Request, name string) (uint64, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeValidation, "invalid %s", name)
	}
	return v, nil
}

func queryUint(r *http.Request, name string) (*uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, dErrors.Newf(dErrors.CodeValidation, "invalid %s parameter", name)
	}
	return &v, nil
}
