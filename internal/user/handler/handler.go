// Package handler exposes the user and auth HTTP surface.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"originstamp/internal/user/models"
	"originstamp/pkg/platform/httputil"
)

// Service defines the user operations the handler needs.
type Service interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	GetInfo(ctx context.Context, username string) (models.User, error)
	ListUsernames(ctx context.Context) ([]string, error)
	SetPermissions(ctx context.Context, perms models.Permissions) error
}

// Handler handles user endpoints.
type Handler struct {
	logger *slog.Logger
	users  Service
}

// New creates a user Handler.
func New(users Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, users: users}
}

// RegisterPublic mounts registration and login, which have no token yet.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
}

// Register mounts the authenticated user routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/users", h.handleList)
	r.Get("/users/{username}", h.handleGetInfo)
	r.Put("/users/{username}/permissions", h.handleSetPermissions)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) handleGetInfo(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetInfo(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	usernames, err := h.users.ListUsernames(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"usernames": usernames})
}

type permissionsRequest struct {
	CanCreateCertificates bool `json:"can_create_certificates"`
}

func (h *Handler) handleSetPermissions(w http.ResponseWriter, r *http.Request) {
	var req permissionsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	err := h.users.SetPermissions(r.Context(), models.Permissions{
		Username:              chi.URLParam(r, "username"),
		CanCreateCertificates: req.CanCreateCertificates,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
