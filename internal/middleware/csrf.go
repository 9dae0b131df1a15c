package middleware

import (
	"log/slog"
	"net/http"

	"github.com/employwise/console/internal/session"
)

// CSRFProtection validates the csrf_token form field on state-changing
// requests inside the authenticated area. Tokens are bound to the session
// that rendered the form.
func CSRFProtection(csrfManager *session.CSRFTokenManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isStateChangingMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			claims := session.FromContext(r)
			if claims == nil {
				// RequireSession runs first; reaching here without claims
				// means the route is miswired
				logger.Error("csrf check on route without session context", slog.String("path", r.URL.Path))
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			token := r.PostFormValue("csrf_token")
			if token == "" {
				logger.Warn("csrf token missing",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}

			if !csrfManager.ValidateToken(token, claims.ID) {
				logger.Warn("csrf token validation failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isStateChangingMethod checks if the HTTP method modifies state
func isStateChangingMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	default:
		return false
	}
}
