package routes

import (
	"context"
	"net/http"

	"github.com/bkovacev/showtrack/internal/handlers"
	"github.com/bkovacev/showtrack/internal/middleware"
	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	showHandler *handlers.ShowHandler,
	pageHandler *handlers.PageHandler,
	sessionMW *middleware.SessionMiddleware,
	health HealthChecker,
	staticDir string,
) {
	// Every route sees the session principal when a valid cookie is present.
	router.Use(sessionMW.Load)

	// REST API. Authorization checks that depend on the resource owner live
	// in the handlers; the responses are JSON envelopes, never redirects.
	router.Route("/rest/korisnici", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Register)
		r.Get("/{korime}", userHandler.Get)
		r.Put("/{korime}", userHandler.Update)
		r.Post("/{korime}/prijava", authHandler.Login)
		r.Put("/{korime}/odjava", authHandler.Logout)
	})

	router.Get("/api/provjera-sesije", authHandler.SessionCheck)
	router.Get("/api/serije", showHandler.Search)

	// Pages. Guards redirect browsers to the login page instead of
	// answering with JSON.
	router.Get("/", pageHandler.Index)
	router.Get("/info", pageHandler.Info)
	router.Get("/reg", pageHandler.Register)
	router.Get("/prijava", pageHandler.Login)
	router.With(sessionMW.RequireLogin).Get("/odjava", pageHandler.Logout)

	anyRole := sessionMW.RequireRole(models.RoleRegistered, models.RoleAdministrator)
	router.With(anyRole).Get("/detalji", pageHandler.Details)
	router.With(anyRole).Get("/gledano", pageHandler.Watched)
	router.With(sessionMW.RequireRole(models.RoleAdministrator)).Get("/korisnici", pageHandler.Users)

	// Supporting assets referenced by the pages (styles, scripts).
	fileServer := http.StripPrefix("/assets/", http.FileServer(http.Dir(staticDir)))
	router.Get("/assets/*", fileServer.ServeHTTP)

	// Operations endpoints.
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := health.HealthCheck(r.Context()); err != nil {
			httputil.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())

	// Anything else is an unknown resource.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFound(w, "resource not found")
	})
}
