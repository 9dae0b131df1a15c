package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/employwise/console/internal/services"
	"github.com/employwise/console/internal/session"
	"github.com/employwise/console/internal/views"
	pkglogger "github.com/employwise/console/pkg/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthHandler(mock *services.MockUserAPI) (*AuthHandler, *session.Manager) {
	logger := testLogger()
	audit := pkglogger.NewAuditLogger(logger)
	sessions := session.NewManager("test-secret-32-characters-long!!", time.Hour, 24*time.Hour, session.CookieConfig{SameSite: "lax"})
	auth := services.NewAuthService(mock, logger, audit)
	return NewAuthHandler(auth, sessions, views.New(), logger, audit), sessions
}

func newTestUsersHandler(mock *services.MockUserAPI) *UsersHandler {
	logger := testLogger()
	listing := services.NewListingService(mock, logger)
	return NewUsersHandler(listing, session.NewCSRFTokenManager(), views.New(), logger, pkglogger.NewAuditLogger(logger))
}

// withSession stamps test session claims into the request context the way
// RequireSession does for authenticated routes
func withSession(r *http.Request) *http.Request {
	claims := &session.Claims{APIToken: "QpwL5tke4Pnpja7X4"}
	claims.ID = "test-session"
	ctx := context.WithValue(r.Context(), session.SessionContextKey, claims)
	return r.WithContext(ctx)
}

// withURLParam stamps a chi route parameter into the request context
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func newFormRequest(t *testing.T, target string, form url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}
