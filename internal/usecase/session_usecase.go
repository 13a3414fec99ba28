// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"passport/internal/domain/entity"
	"passport/internal/domain/service"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in. PresentedToken
// carries any session token the client sent along; a login that hits a
// suspended or deleted account revokes it.
type LoginInput struct {
	Email          string
	Password       string
	PresentedToken string
}

// --- Output DTOs ---

// SessionOutput returns a freshly issued session token and the owning user.
type SessionOutput struct {
	Token string
	User  *entity.UserPublic
}

// SessionUsecase defines the interface for session-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type SessionUsecase interface {
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, input LoginInput) (*SessionOutput, error)

	// Logout denylists the presented token. Succeeds even for tokens that
	// are already invalid.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a presented token into the caller's identity,
	// checking the denylist and the current account state.
	Authenticate(ctx context.Context, token string) (*service.AuthInfo, error)

	// CheckPassword re-verifies the caller's password under an already
	// authenticated session, for sensitive confirmation prompts.
	CheckPassword(ctx context.Context, token, password string) error
}
