package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bkovacev/showtrack/internal/middleware"
	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/internal/services"
	"github.com/bkovacev/showtrack/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (int64, error)
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, username, email, firstName, lastName, birthDate string) error
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Request/Response DTOs

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=6"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
}

// UpdateProfileRequest represents the request body for a profile update
type UpdateProfileRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
}

// UserResponse represents a user in the HTTP response
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
}

// RegisterResponse acknowledges a successful registration
type RegisterResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// userModelToResponse converts a user model to a response DTO
func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: user.BirthDate,
		Role:      string(user.Role),
		Active:    user.Active,
	}
}

// List returns all users without credential fields
//
// GET /rest/korisnici
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, "failed to list users")
		return
	}

	resp := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, userModelToResponse(user))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Get returns a single user by username
//
// GET /rest/korisnici/{korime}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "korime")

	user, err := h.service.Get(r.Context(), username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httputil.WriteNotFound(w, "user not found")
			return
		}
		httputil.WriteInternalError(w, "failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, userModelToResponse(user))
}

// Register creates a new user account
//
// POST /rest/korisnici
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	id, err := h.service.Register(r.Context(), services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			httputil.WriteBadRequest(w, "username or email already taken")
			return
		}
		httputil.WriteInternalError(w, "failed to register user")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: "registration successful",
		ID:      id,
	})
}

// Update modifies the profile fields of an existing user. Only the user
// themselves or an administrator may do so.
//
// PUT /rest/korisnici/{korime}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "korime")

	principal := middleware.PrincipalFromContext(r)
	if principal == nil {
		httputil.WriteUnauthorized(w, "not logged in")
		return
	}
	if principal.Username != username && principal.Role != models.RoleAdministrator {
		httputil.WriteForbidden(w, "cannot modify another user")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	err := h.service.UpdateProfile(r.Context(), username, req.Email, req.FirstName, req.LastName, req.BirthDate)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httputil.WriteNotFound(w, "user not found")
			return
		}
		httputil.WriteInternalError(w, "failed to update user")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"message": "profile updated"})
}
