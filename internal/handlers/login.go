package handlers

import (
	"log/slog"
	"net/http"

	"github.com/employwise/console/internal/models"
	"github.com/employwise/console/internal/notice"
	"github.com/employwise/console/internal/services"
	"github.com/employwise/console/internal/session"
	"github.com/employwise/console/internal/views"
	pkglogger "github.com/employwise/console/pkg/logger"
)

// LoginForm represents the sign-in form submission
type LoginForm struct {
	Email      string `validate:"required,email"`
	Password   string `validate:"required"`
	RememberMe bool
}

// AuthHandler serves the login view and the login/logout submissions
type AuthHandler struct {
	auth     *services.AuthService
	sessions *session.Manager
	renderer *views.Renderer
	logger   *slog.Logger
	audit    *pkglogger.AuditLogger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService, sessions *session.Manager, renderer *views.Renderer, logger *slog.Logger, audit *pkglogger.AuditLogger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
		audit:    audit,
	}
}

// ShowLogin renders the sign-in view, surfacing any pending notice such
// as the logout confirmation
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	n, ok := notice.Pop(w, r)
	h.renderPage(w, views.LoginPage{Notice: views.NewNoticeView(n, ok)})
}

// Login handles the sign-in submission. Success shows the confirmation
// and hands off to the listing after a short delay; any failure shows one
// fixed message and keeps the submitted email in the form.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	form := LoginForm{
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
		RememberMe: r.PostFormValue("remember_me") == "true",
	}

	if err := ValidateRequest(form); err != nil {
		h.logger.Info("login form rejected", slog.Any("error", err))
		h.renderLoginError(w, form)
		return
	}

	token, err := h.auth.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		h.renderLoginError(w, form)
		return
	}

	if err := h.sessions.Issue(w, token, form.RememberMe); err != nil {
		h.logger.Error("failed to issue session", slog.Any("error", err))
		h.renderLoginError(w, form)
		return
	}

	h.renderPage(w, views.LoginPage{
		Notice: views.NewNoticeView(
			models.NewNotice(models.NoticeSuccess, "Login successful!", models.NoticeRedirectTTL), true),
		RedirectAfter: true,
	})
}

// Logout clears the session and returns to the sign-in view with a
// confirmation notice
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	h.audit.LogAuthAttempt(pkglogger.AuditEvent{EventType: "logout", Success: true})

	notice.Set(w, models.NewNotice(models.NoticeSuccess, "Logout successful!", models.NoticeTTL))
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, form LoginForm) {
	h.renderPage(w, views.LoginPage{
		Notice: views.NewNoticeView(
			models.NewNotice(models.NoticeError, "Invalid credentials", models.NoticeTTL), true),
		Email:      form.Email,
		RememberMe: form.RememberMe,
	})
}

func (h *AuthHandler) renderPage(w http.ResponseWriter, page views.LoginPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Login(w, page); err != nil {
		h.logger.Error("failed to render login page", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
