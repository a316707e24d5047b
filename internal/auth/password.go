package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// PasswordAuthenticator checks a shared editor password against a bcrypt hash
// supplied through configuration.
type PasswordAuthenticator struct {
	hash []byte
}

// NewPasswordAuthenticator creates an authenticator for the given bcrypt hash.
func NewPasswordAuthenticator(hash string) (*PasswordAuthenticator, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid bcrypt hash: %w", err)
	}
	return &PasswordAuthenticator{hash: []byte(hash)}, nil
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	return validatePassword(credential)
}

// Authenticate compares the password with the configured hash. A password
// that HashPassword would refuse is rejected without running bcrypt.
func (a *PasswordAuthenticator) Authenticate(_ context.Context, credential string) error {
	if err := a.ValidateCredential(credential); err != nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces the bcrypt hash to put in EDITOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}
