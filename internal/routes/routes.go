package routes

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/employwise/console/internal/handlers"
	"github.com/employwise/console/internal/middleware"
	"github.com/employwise/console/internal/session"
)

// RegisterRoutes registers all console routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	usersHandler *handlers.UsersHandler,
	sessions *session.Manager,
	csrfManager *session.CSRFTokenManager,
	logger *slog.Logger,
) {
	// Public routes - no session required
	router.Get("/", authHandler.ShowLogin)
	router.With(middleware.RateLimitByIP(middleware.DefaultLoginRateLimit())).Post("/login", authHandler.Login)

	// Protected routes - valid session required
	router.Group(func(r chi.Router) {
		r.Use(session.RequireSession(sessions))
		r.Use(middleware.CSRFProtection(csrfManager, logger))

		r.Get("/users", usersHandler.List)
		r.Post("/users/{id}", usersHandler.Update)
		r.Post("/users/{id}/delete", usersHandler.Delete)
		r.Get("/edit-user/{id}", usersHandler.EditRedirect)

		r.Post("/logout", authHandler.Logout)
	})
}
