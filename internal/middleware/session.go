package middleware

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/internal/session"
)

// contextKey is a custom type for context keys
type contextKey string

const principalKey contextKey = "principal"

// SessionMiddleware resolves session cookies and gates page routes. REST
// endpoints answer with JSON envelopes instead and run their own checks in
// the handlers; browsable pages redirect to the login page.
type SessionMiddleware struct {
	sessions  *session.Manager
	staticDir string
}

func NewSessionMiddleware(sessions *session.Manager, staticDir string) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:  sessions,
		staticDir: staticDir,
	}
}

// Load attaches the session principal to the request context when a valid
// session cookie is presented. It never rejects the request.
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := m.sessions.SessionID(r); ok {
			if principal, ok := m.sessions.Get(id); ok {
				ctx := context.WithValue(r.Context(), principalKey, principal)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLogin redirects unauthenticated page requests to the login page.
func (m *SessionMiddleware) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromContext(r) == nil {
			http.Redirect(w, r, "/prijava", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole passes through only when the session principal holds one of
// the allowed roles. Unauthenticated requests are redirected to the login
// page; authenticated ones with a disallowed role get the static 403 page.
func (m *SessionMiddleware) RequireRole(roles ...models.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r)
			if principal == nil {
				http.Redirect(w, r, "/prijava", http.StatusFound)
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			m.serveForbiddenPage(w)
		})
	}
}

func (m *SessionMiddleware) serveForbiddenPage(w http.ResponseWriter) {
	page, err := os.ReadFile(filepath.Join(m.staticDir, "403.html"))
	if err != nil {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	w.Write(page)
}

// PrincipalFromContext extracts the session principal from the request
// context, or nil when the request is unauthenticated.
func PrincipalFromContext(r *http.Request) *models.Principal {
	principal, ok := r.Context().Value(principalKey).(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}

// WithPrincipal returns a copy of the request carrying the principal. Used
// by handler tests.
func WithPrincipal(r *http.Request, principal *models.Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, principal))
}
