package auth

import (
	"context"

	"github.com/mmynk/weekgoal/internal/models"
)

// Authenticator turns a driver's email and secret into a stored account.
// AuthService only sees this interface; the password flow is the one
// implementation today.
type Authenticator interface {
	// Register stores a new driver account. The email is normalized first.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account for email, or ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects secrets too weak to register with.
	ValidateCredential(credential string) error
}
