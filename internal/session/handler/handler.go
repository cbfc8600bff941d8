// Package handler exposes the session HTTP surface.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"originstamp/internal/session/models"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/platform/httputil"
	"originstamp/pkg/requestcontext"
)

// Service defines the session operations the handler needs.
type Service interface {
	Create(ctx context.Context, title, description string) (*models.Session, error)
	RecordPhoto(ctx context.Context, sessionID, photoRef string, sizeBytes uint64) (*models.Session, error)
	RemovePhoto(ctx context.Context, sessionID, photoRef string) (*models.Session, error)
	UpdateStatus(ctx context.Context, sessionID string, status models.Status) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	ListByOwner(ctx context.Context, username string) ([]*models.Session, error)
}

// Handler handles session endpoints.
type Handler struct {
	logger   *slog.Logger
	sessions Service
}

// New creates a session Handler.
func New(sessions Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, sessions: sessions}
}

// Register mounts the authenticated session routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/sessions", h.handleCreate)
	r.Get("/sessions", h.handleListMine)
	r.Get("/sessions/{sessionID}", h.handleGet)
	r.Post("/sessions/{sessionID}/photos", h.handleRecordPhoto)
	r.Delete("/sessions/{sessionID}/photos", h.handleRemovePhoto)
	r.Put("/sessions/{sessionID}/status", h.handleUpdateStatus)
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	session, err := h.sessions.Create(r.Context(), req.Title, req.Description)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, session)
}

type photoRequest struct {
	PhotoRef  string `json:"photo_ref"`
	SizeBytes uint64 `json:"size_bytes"`
}

func (h *Handler) handleRecordPhoto(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	session, err := h.sessions.RecordPhoto(r.Context(), chi.URLParam(r, "sessionID"), req.PhotoRef, req.SizeBytes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) handleRemovePhoto(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	session, err := h.sessions.RemovePhoto(r.Context(), chi.URLParam(r, "sessionID"), req.PhotoRef)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	session, err := h.sessions.UpdateStatus(r.Context(), chi.URLParam(r, "sessionID"), status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.Caller(ctx)
	if caller == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	sessions, err := h.sessions.ListByOwner(ctx, caller)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}
