package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bkovacev/showtrack/internal/middleware"
	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T) *session.Manager {
	t.Helper()
	sessions := session.NewManager("test-secret", 10*time.Minute)
	t.Cleanup(sessions.Stop)
	return sessions
}

func authRouter(h *AuthHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/rest/korisnici/{korime}/prijava", h.Login)
	r.Put("/rest/korisnici/{korime}/odjava", h.Logout)
	r.Get("/api/provjera-sesije", h.SessionCheck)
	return r
}

func TestAuthHandler_Login_Success(t *testing.T) {
	sessions := newTestSessions(t)
	svc := &MockAuthService{
		LoginFunc: func(ctx context.Context, username, password, ipAddress string) (*models.Principal, error) {
			require.Equal(t, "pero", username)
			require.Equal(t, "lozinka1", password)
			return &models.Principal{ID: 1, Username: "pero", Role: models.RoleRegistered}, nil
		},
	}

	rec := httptest.NewRecorder()
	authRouter(NewAuthHandler(svc, sessions)).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/rest/korisnici/pero/prijava",
			strings.NewReader(`{"password":"lozinka1"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pero", resp.User.Username)

	// The cookie must reference a live session.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	id, ok := sessions.SessionID(req)
	require.True(t, ok)
	principal, ok := sessions.Get(id)
	require.True(t, ok)
	assert.Equal(t, "pero", principal.Username)
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	rec := httptest.NewRecorder()
	authRouter(NewAuthHandler(&MockAuthService{}, newTestSessions(t))).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/rest/korisnici/pero/prijava", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"invalid credentials", models.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"locked account", models.ErrLocked, http.StatusUnauthorized, "account is locked"},
		{"lockout just tripped", fmt.Errorf("too many failed attempts: %w", models.ErrLocked), http.StatusUnauthorized, "too many failed attempts"},
		{"storage failure", models.ErrInternalServer, http.StatusInternalServerError, "login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuthService{
				LoginFunc: func(ctx context.Context, username, password, ipAddress string) (*models.Principal, error) {
					return nil, tt.err
				},
			}

			rec := httptest.NewRecorder()
			authRouter(NewAuthHandler(svc, newTestSessions(t))).ServeHTTP(rec,
				httptest.NewRequest(http.MethodPost, "/rest/korisnici/pero/prijava",
					strings.NewReader(`{"password":"wrong"}`)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMessage)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := newTestSessions(t)
	principal := &models.Principal{ID: 1, Username: "pero", Role: models.RoleRegistered}
	id := sessions.Create(principal)

	cookieRec := httptest.NewRecorder()
	sessions.SetCookie(cookieRec, id)

	req := httptest.NewRequest(http.MethodPut, "/rest/korisnici/pero/odjava", nil)
	req.AddCookie(cookieRec.Result().Cookies()[0])
	req = middleware.WithPrincipal(req, principal)

	rec := httptest.NewRecorder()
	authRouter(NewAuthHandler(&MockAuthService{}, sessions)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	_, alive := sessions.Get(id)
	assert.False(t, alive)

	// Clearing cookie expires it.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthHandler_Logout_Unauthorized(t *testing.T) {
	sessions := newTestSessions(t)
	router := authRouter(NewAuthHandler(&MockAuthService{}, sessions))

	// Anonymous request.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/rest/korisnici/pero/odjava", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logged in as someone else.
	req := middleware.WithPrincipal(
		httptest.NewRequest(http.MethodPut, "/rest/korisnici/pero/odjava", nil),
		&models.Principal{Username: "ana", Role: models.RoleRegistered})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout_MissingSession(t *testing.T) {
	sessions := newTestSessions(t)

	// Principal present but no verifiable cookie backs it.
	req := middleware.WithPrincipal(
		httptest.NewRequest(http.MethodPut, "/rest/korisnici/pero/odjava", nil),
		&models.Principal{Username: "pero", Role: models.RoleRegistered})

	rec := httptest.NewRecorder()
	authRouter(NewAuthHandler(&MockAuthService{}, sessions)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "logout failed")
}

func TestAuthHandler_SessionCheck(t *testing.T) {
	router := authRouter(NewAuthHandler(&MockAuthService{}, newTestSessions(t)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/provjera-sesije", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var anon SessionCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &anon))
	assert.False(t, anon.LoggedIn)
	assert.Nil(t, anon.User)

	req := middleware.WithPrincipal(
		httptest.NewRequest(http.MethodGet, "/api/provjera-sesije", nil),
		&models.Principal{ID: 1, Username: "pero", Role: models.RoleRegistered})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var authed SessionCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authed))
	assert.True(t, authed.LoggedIn)
	require.NotNil(t, authed.User)
	assert.Equal(t, "pero", authed.User.Username)
}
