package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/bkovacev/showtrack/internal/session"
)

// PageHandler serves the static HTML pages. Access control lives in the
// router via the session middleware, not here.
type PageHandler struct {
	staticDir string
	sessions  *session.Manager
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(staticDir string, sessions *session.Manager) *PageHandler {
	return &PageHandler{
		staticDir: staticDir,
		sessions:  sessions,
	}
}

func (h *PageHandler) page(name string) http.HandlerFunc {
	path := filepath.Join(h.staticDir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}

// Index serves the landing page (GET /)
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.page("index.html")(w, r)
}

// Info serves the documentation page (GET /info)
func (h *PageHandler) Info(w http.ResponseWriter, r *http.Request) {
	h.page("info.html")(w, r)
}

// Register serves the registration form (GET /reg)
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.page("registracija.html")(w, r)
}

// Login serves the login form (GET /prijava)
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.page("prijava.html")(w, r)
}

// Logout destroys the browser session and redirects home (GET /odjava)
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.sessions.SessionID(r); ok {
		h.sessions.Destroy(id)
	}
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Details serves the show details page (GET /detalji)
func (h *PageHandler) Details(w http.ResponseWriter, r *http.Request) {
	h.page("detalji.html")(w, r)
}

// Watched serves the watched shows page (GET /gledano)
func (h *PageHandler) Watched(w http.ResponseWriter, r *http.Request) {
	h.page("gledano.html")(w, r)
}

// Users serves the user administration page (GET /korisnici)
func (h *PageHandler) Users(w http.ResponseWriter, r *http.Request) {
	h.page("korisnici.html")(w, r)
}
