package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bkovacev/showtrack/internal/middleware"
	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/internal/session"
	"github.com/bkovacev/showtrack/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, username, password, ipAddress string) (*models.Principal, error)
}

// AuthHandler handles login, logout and session inspection
type AuthHandler struct {
	service  AuthService
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
	}
}

// LoginRequest represents the request body for a login attempt
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse acknowledges a successful login
type LoginResponse struct {
	Message string            `json:"message"`
	User    *models.Principal `json:"user"`
}

// SessionCheckResponse reports the current session state
type SessionCheckResponse struct {
	LoggedIn bool              `json:"loggedIn"`
	User     *models.Principal `json:"user,omitempty"`
}

// Login authenticates the user and establishes a session cookie
//
// POST /rest/korisnici/{korime}/prijava
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "korime")

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	principal, err := h.service.Login(r.Context(), username, req.Password, httputil.ClientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrLocked):
			httputil.WriteUnauthorized(w, err.Error())
		case errors.Is(err, models.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "invalid credentials")
		default:
			httputil.WriteInternalError(w, "login failed")
		}
		return
	}

	id := h.sessions.Create(principal)
	h.sessions.SetCookie(w, id)

	httputil.WriteJSON(w, http.StatusCreated, LoginResponse{
		Message: "login successful",
		User:    principal,
	})
}

// Logout tears down the caller's own session
//
// PUT /rest/korisnici/{korime}/odjava
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "korime")

	principal := middleware.PrincipalFromContext(r)
	if principal == nil || principal.Username != username {
		httputil.WriteUnauthorized(w, "not logged in")
		return
	}

	id, ok := h.sessions.SessionID(r)
	if !ok || !h.sessions.Destroy(id) {
		httputil.WriteInternalError(w, "logout failed")
		return
	}

	h.sessions.ClearCookie(w)
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"message": "logout successful"})
}

// SessionCheck reports whether the request carries a live session
//
// GET /api/provjera-sesije
func (h *AuthHandler) SessionCheck(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r)
	httputil.WriteJSON(w, http.StatusOK, SessionCheckResponse{
		LoggedIn: principal != nil,
		User:     principal,
	})
}
