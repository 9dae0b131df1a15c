package session

import (
	"context"
	"net/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// SessionContextKey is the key for storing session claims in context
	SessionContextKey contextKey = "session"
)

// RequireSession gates access on a valid session cookie. Requests without
// one are redirected to the login view; this is the only access-control
// point in the console, and the edit modal inherits it by living inside
// the listing.
func RequireSession(m *Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := m.claims(r)
			if err != nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts session claims from request context
func FromContext(r *http.Request) *Claims {
	claims, ok := r.Context().Value(SessionContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
