package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// SubmitResetInput is the reset form posted back from the email link. The
// expiry travels with the form and is checked before any cache access; the
// authoritative email binding comes from the registered ticket, never from
// the client.
type SubmitResetInput struct {
	ResetID     string
	NewPassword string
	ExpiresAt   time.Time
}

// ResetUsecase defines the interface for the password-reset handshake.
type ResetUsecase interface {
	// RequestReset opens a reset handshake for the account registered
	// under email and hands the ticket to the mail pipeline.
	RequestReset(ctx context.Context, email string) error

	// SubmitReset consumes a ticket and installs the new password.
	SubmitReset(ctx context.Context, input SubmitResetInput) error
}
