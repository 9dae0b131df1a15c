package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/employwise/console/internal/api"
	"github.com/employwise/console/internal/config"
	"github.com/employwise/console/internal/handlers"
	middlewareCustom "github.com/employwise/console/internal/middleware"
	"github.com/employwise/console/internal/routes"
	"github.com/employwise/console/internal/services"
	"github.com/employwise/console/internal/session"
	"github.com/employwise/console/internal/views"
	pkglogger "github.com/employwise/console/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.String("api_base_url", cfg.API.BaseURL))

	// Remote user-management API client
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, logger)

	// Session and CSRF management
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.RememberTTL, session.CookieConfig{
		Domain:   cfg.Session.CookieDomain,
		Secure:   cfg.Session.CookieSecure,
		SameSite: cfg.Session.CookieSameSite,
	})
	csrfManager := session.NewCSRFTokenManager()

	// Initialize services
	auditLogger := pkglogger.NewAuditLogger(logger)
	authService := services.NewAuthService(client, logger, auditLogger)
	listingService := services.NewListingService(client, logger)

	// Initialize handlers
	renderer := views.New()
	authHandler := handlers.NewAuthHandler(authService, sessions, renderer, logger, auditLogger)
	usersHandler := handlers.NewUsersHandler(listingService, csrfManager, renderer, logger, auditLogger)

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, authHandler, usersHandler, sessions, csrfManager, logger)

	// Health check
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
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
