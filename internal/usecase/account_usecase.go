package usecase

import (
	"context"

	"passport/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateProfileInput defines the mutable profile fields.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
}

// ChangePasswordInput defines the data required to rotate a password under an
// authenticated session.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// AccountUsecase defines the interface for account-related business operations.
type AccountUsecase interface {
	// Register creates a new user account and opens its first session.
	Register(ctx context.Context, input RegisterInput) (*SessionOutput, error)

	// GetProfile returns the authenticated caller's own profile.
	GetProfile(ctx context.Context, token string) (*entity.UserPublic, error)

	// GetUserByID returns the public projection of any user.
	GetUserByID(ctx context.Context, id entity.UserID) (*entity.UserPublic, error)

	// GetUserByEmail returns the public projection of any user.
	GetUserByEmail(ctx context.Context, email string) (*entity.UserPublic, error)

	// UpdateProfile mutates the caller's profile and rotates the session
	// token so its claims stay consistent with the stored state.
	UpdateProfile(ctx context.Context, token string, input UpdateProfileInput) (*SessionOutput, error)

	// ChangePassword rotates the caller's credential. The presented token
	// is revoked and a fresh one returned.
	ChangePassword(ctx context.Context, token string, input ChangePasswordInput) (*SessionOutput, error)

	// VerifyEmail marks the caller's login email as confirmed.
	VerifyEmail(ctx context.Context, token string) error

	// DeleteAccount soft-deletes the caller's account and revokes the
	// presented token. The current password gates the deletion.
	DeleteAccount(ctx context.Context, token string, password string) error

	// SetSuspended toggles suspension on a target account. Platform
	// administrators only.
	SetSuspended(ctx context.Context, token string, target entity.UserID, suspended bool) error
}
