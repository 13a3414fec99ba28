package repository

import (
	"context"

	"passport/internal/domain/entity"
	"passport/internal/errors"
)

// ErrResetTicketNotFound indicates the ticket id has no live cache entry,
// either because it never existed, expired, or was already consumed.
var ErrResetTicketNotFound = errors.New("reset ticket not found")

// RevocationStore keeps short-lived denylist and handshake state in a shared
// cache. Entries carry their own TTL; nothing here is durable.
type RevocationStore interface {
	// RevokeToken denylists a session token string for the given lifetime.
	RevokeToken(ctx context.Context, token string) error

	// IsRevoked reports whether a token has been denylisted. A cache
	// connectivity fault is returned as an error; callers decide whether
	// to fail open.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// RegisterResetTicket stores a password-reset ticket under its id.
	RegisterResetTicket(ctx context.Context, ticket *entity.PasswordResetTicket) error

	// LookupResetTicket returns the email bound to a ticket id, or
	// ErrResetTicketNotFound when no live entry exists.
	LookupResetTicket(ctx context.Context, resetID string) (string, error)

	// DeleteResetTicket removes a consumed ticket. Best effort; the entry
	// expires on its own regardless.
	DeleteResetTicket(ctx context.Context, resetID string) error
}
