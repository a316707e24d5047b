package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/hospital-billing/internal/auth"
)

// Session is an issued editor token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService exchanges the editor password for a session token.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Login verifies the password and issues an editor token.
func (s *AuthService) Login(ctx context.Context, password string) (*Session, error) {
	if password == "" {
		return nil, invalid("password", "is required")
	}

	if err := s.authenticator.Authenticate(ctx, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Warn("Login failed", "error", err)
		} else {
			slog.Error("Login failed", "error", err)
		}
		return nil, err
	}

	token, expiresAt, err := s.jwtManager.Generate(auth.RoleEditor, auth.RoleEditor)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		return nil, err
	}

	slog.Info("Editor logged in", "expires_at", expiresAt)
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}
