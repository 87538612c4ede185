package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bkovacev/showtrack/internal/config"
	"github.com/bkovacev/showtrack/internal/database"
	"github.com/bkovacev/showtrack/internal/handlers"
	middlewareCustom "github.com/bkovacev/showtrack/internal/middleware"
	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/internal/repositories"
	"github.com/bkovacev/showtrack/internal/routes"
	"github.com/bkovacev/showtrack/internal/services"
	"github.com/bkovacev/showtrack/internal/session"
	"github.com/bkovacev/showtrack/internal/tmdb"
	pkgauth "github.com/bkovacev/showtrack/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration; the path may be passed as the first argument.
	configPath := config.DefaultPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("path", configPath), slog.Any("error", err))
		os.Exit(1)
	}
	if len(os.Args) > 2 {
		cfg.ListenAddr = os.Args[2]
	}

	logger.Info("configuration loaded", slog.String("path", configPath))

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Open(ctx, cfg.DatabasePath, logger)
	cancel()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	loginAttemptRepo := repositories.NewLoginAttemptRepository(db)

	// Seed one account per role so the site is usable out of the box
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureSeedUsers(ctx, userRepo, logger); err != nil {
		logger.Error("failed to seed users", slog.Any("error", err))
	}
	cancel()

	// Initialize services
	userService := services.NewUserService(userRepo, logger)
	lockoutService := services.NewLockoutService(loginAttemptRepo, logger)
	authService := services.NewAuthService(userService, userService, lockoutService, cfg.MaxFailedLogins, logger)
	showService := services.NewShowService(tmdb.NewClient(cfg.TMDBAPIKey), cfg.PageSize, logger)

	// Initialize sessions
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	defer sessions.Stop()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService, sessions)
	showHandler := handlers.NewShowHandler(showService)
	pageHandler := handlers.NewPageHandler(cfg.StaticDir, sessions)
	sessionMW := middlewareCustom.NewSessionMiddleware(sessions, cfg.StaticDir)

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middlewareCustom.RequestLogger(logger))
	router.Use(middlewareCustom.Metrics)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, userHandler, authHandler, showHandler, pageHandler, sessionMW, db, cfg.StaticDir)

	// Create server
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// seedUser describes a bootstrap account created on first start.
type seedUser struct {
	username string
	email    string
	first    string
	last     string
	birth    string
	role     models.Role
}

// ensureSeedUsers creates one registered and one administrator account if
// they are missing. The password is fixed and meant to be changed.
func ensureSeedUsers(ctx context.Context, userRepo *repositories.UserRepository, logger *slog.Logger) error {
	seeds := []seedUser{
		{username: "pero", email: "pero@example.com", first: "Pero", last: "Peric", birth: "1990-05-14", role: models.RoleRegistered},
		{username: "admin", email: "admin@example.com", first: "Ana", last: "Anic", birth: "1985-01-30", role: models.RoleAdministrator},
	}

	for _, seed := range seeds {
		_, err := userRepo.GetByUsername(ctx, seed.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to check seed user %s: %w", seed.username, err)
		}

		salt, err := pkgauth.GenerateSalt()
		if err != nil {
			return fmt.Errorf("failed to generate salt for %s: %w", seed.username, err)
		}

		user := &models.User{
			Username:     seed.username,
			Email:        seed.email,
			PasswordHash: pkgauth.HashPassword("changeme", salt),
			Salt:         salt,
			FirstName:    seed.first,
			LastName:     seed.last,
			BirthDate:    seed.birth,
			Role:         seed.role,
			Active:       true,
		}

		if _, err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create seed user %s: %w", seed.username, err)
		}
		logger.Info("seed user created", slog.String("username", seed.username), slog.String("role", string(seed.role)))
	}

	return nil
}
