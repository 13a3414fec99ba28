package service

import (
	"context"
	"time"

	"passport/internal/domain/entity"
)

// PasswordResetNotice carries everything the mail pipeline needs to render a
// reset message. The ticket id is the secret; it never appears in logs.
type PasswordResetNotice struct {
	Email     string    `json:"email"`
	ResetID   string    `json:"resetId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Notifier publishes user lifecycle events to the messaging pipeline.
// Implementations must not block the calling request beyond their configured
// publish timeout.
type Notifier interface {
	// SendPasswordReset hands a reset notice to the mail pipeline.
	SendPasswordReset(ctx context.Context, notice *PasswordResetNotice) error

	// SendUserCreated announces a freshly registered account.
	SendUserCreated(ctx context.Context, userID entity.UserID, email string) error
}
