// Package handler exposes the certificate HTTP surface.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"originstamp/internal/certificate/models"
	"originstamp/pkg/platform/httputil"
)

// Service defines the certificate operations the handler needs.
type Service interface {
	Issue(ctx context.Context, req models.IssueRequest) (*models.Certificate, error)
	Get(ctx context.Context, certificateID string) (*models.Certificate, error)
	Verify(ctx context.Context, certificateID string) (*models.VerificationOutcome, error)
	ListByOwner(ctx context.Context, username string) ([]*models.Certificate, error)
	ListBySession(ctx context.Context, sessionID string) ([]*models.Certificate, error)
}

// Handler handles certificate endpoints.
type Handler struct {
	logger *slog.Logger
	certs  Service
}

// New creates a certificate Handler.
func New(certs Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, certs: certs}
}

// Register mounts the authenticated certificate routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/certificates", h.handleIssue)
}

// RegisterPublic mounts the read-only routes that need no authentication.
// Verification is deliberately public so anyone scanning a QR code can check
// a certificate.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/certificates/{certificateID}", h.handleGet)
	r.Get("/certificates/{certificateID}/verify", h.handleVerify)
	r.Get("/users/{username}/certificates", h.handleListByOwner)
	r.Get("/sessions/{sessionID}/certificates", h.handleListBySession)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.IssueRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	cert, err := h.certs.Issue(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "certificate issuance rejected",
			"session_id", req.SessionID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, cert)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	cert, err := h.certs.Get(r.Context(), chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cert)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.certs.Verify(r.Context(), chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handleListByOwner(w http.ResponseWriter, r *http.Request) {
	certs, err := h.certs.ListByOwner(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"certificates": certs})
}

func (h *Handler) handleListBySession(w http.ResponseWriter, r *http.Request) {
	certs, err := h.certs.ListBySession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"certificates": certs})
}
