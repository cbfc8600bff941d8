// Package handler exposes the subscription HTTP surface.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"originstamp/internal/subscription/models"
	"originstamp/pkg/platform/httputil"
)

// Service defines the subscription operations the handler needs.
type Service interface {
	GetTier(ctx context.Context, username string) (models.Tier, models.Limits, error)
	UpdateTier(ctx context.Context, username string, tier models.Tier) error
}

// Handler handles subscription endpoints.
type Handler struct {
	logger        *slog.Logger
	subscriptions Service
}

// New creates a subscription Handler.
func New(subscriptions Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, subscriptions: subscriptions}
}

// Register mounts the authenticated subscription routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/users/{username}/subscription", h.handleGetTier)
	r.Put("/users/{username}/subscription", h.handleUpdateTier)
}

func (h *Handler) handleGetTier(w http.ResponseWriter, r *http.Request) {
	tier, limits, err := h.subscriptions.GetTier(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"tier":   tier,
		"limits": limits,
	})
}

type updateTierRequest struct {
	Tier string `json:"tier"`
}

func (h *Handler) handleUpdateTier(w http.ResponseWriter, r *http.Request) {
	var req updateTierRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	tier, err := models.ParseTier(req.Tier)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.subscriptions.UpdateTier(r.Context(), chi.URLParam(r, "username"), tier); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
