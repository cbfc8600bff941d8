// Package handler exposes the object storage configuration endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"originstamp/internal/s3io"
	"originstamp/pkg/platform/httputil"
)

// Service defines the storage operations the handler needs.
type Service interface {
	Configure(ctx context.Context, config s3io.Config) error
	Config(ctx context.Context) (s3io.Config, error)
	Configured(ctx context.Context) bool
	UploadURL(ctx context.Context, sessionID string, file s3io.UploadFile) (string, error)
}

// Handler handles object storage endpoints.
type Handler struct {
	logger  *slog.Logger
	storage Service
}

// New creates a storage Handler.
func New(storage Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, storage: storage}
}

// Register mounts the authenticated storage routes.
func (h *Handler) Register(r chi.Router) {
	r.Put("/storage/config", h.handleConfigure)
	r.Get("/storage/config", h.handleGetConfig)
	r.Get("/storage/status", h.handleStatus)
	r.Post("/sessions/{sessionID}/upload-url", h.handleUploadURL)
}

func (h *Handler) handleConfigure(w http.ResponseWriter, r *http.Request) {
	var config s3io.Config
	if err := httputil.DecodeJSON(r, &config); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.storage.Configure(r.Context(), config); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	config, err := h.storage.Config(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	// The secret never leaves the service once set.
	config.SecretAccessKey = ""
	httputil.WriteJSON(w, http.StatusOK, config)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{
		"configured": h.storage.Configured(r.Context()),
	})
}

func (h *Handler) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	var file s3io.UploadFile
	if err := httputil.DecodeJSON(r, &file); err != nil {
		httputil.WriteError(w, err)
		return
	}

	url, err := h.storage.UploadURL(r.Context(), chi.URLParam(r, "sessionID"), file)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"upload_url": url})
}
