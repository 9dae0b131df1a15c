package services

import (
	"context"
	"log/slog"

	"github.com/employwise/console/internal/api"
	"github.com/employwise/console/internal/models"
	pkglogger "github.com/employwise/console/pkg/logger"
)

// AuthService handles operator authentication against the remote service
type AuthService struct {
	client UserAPI
	logger *slog.Logger
	audit  *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(client UserAPI, logger *slog.Logger, audit *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		client: client,
		logger: logger,
		audit:  audit,
	}
}

// Login exchanges credentials for the remote session token. Any failure
// maps to ErrInvalidCredentials: the login view shows one fixed message
// and the remote error body is discarded after logging.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	token, err := s.client.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		s.logger.Info("login rejected",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		s.audit.LogAuthAttempt(pkglogger.AuditEvent{
			EventType: "login",
			Email:     pkglogger.SanitizedEmail(email),
			Success:   false,
		})
		return "", models.ErrInvalidCredentials
	}

	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login",
		Email:     pkglogger.SanitizedEmail(email),
		Success:   true,
	})
	return token, nil
}
