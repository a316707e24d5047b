package auth

import "context"

// Authenticator defines the interface for editor authentication.
// PasswordAuthenticator is the only implementation today.
type Authenticator interface {
	// Authenticate verifies the credential. It returns ErrInvalidCredentials
	// when the credential is wrong.
	Authenticate(ctx context.Context, credential string) error

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

var _ Authenticator = (*PasswordAuthenticator)(nil)
