package auth

import (
	"context"

	"github.com/divide-it/backend/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods
// (password, passkeys, OAuth, etc.) without changing the service layer.
type Authenticator interface {
	// Register creates a new user account with the given email, names and
	// credential. The credential format depends on the implementation.
	Register(ctx context.Context, email, firstName, lastName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
