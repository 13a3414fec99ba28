// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetTicket binds a password-reset request to an email address.
// The ticket id is random (never derived from the email) so that ticket ids
// cannot be used to probe for registered addresses. ExpiresAt travels with
// the ticket payload and is checked independently of the cache TTL, so a
// stale client-held ticket is rejected even if cache TTL math drifts.
type PasswordResetTicket struct {
	ResetID     string    `json:"resetId"`
	Email       string    `json:"email"`
	NewPassword string    `json:"newPassword,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// NewPasswordResetTicket creates a ticket for the given email with a fresh
// random id and the given payload expiry window.
func NewPasswordResetTicket(email string, expiry time.Duration) *PasswordResetTicket {
	return &PasswordResetTicket{
		ResetID:   uuid.New().String(),
		Email:     email,
		ExpiresAt: time.Now().Add(expiry),
	}
}

// Expired reports whether the ticket's embedded expiry has passed.
func (t *PasswordResetTicket) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
