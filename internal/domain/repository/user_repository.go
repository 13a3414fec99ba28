// Package repository defines the persistence interfaces of the domain layer.
package repository

import (
	"context"

	"passport/internal/domain/entity"
	"passport/internal/errors"
)

// Sentinel errors for user persistence.
var (
	// ErrUserNotFound indicates no row matched the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser indicates a unique constraint rejected the write.
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts a new user row. Returns ErrDuplicateUser when the
	// email is already registered.
	Create(ctx context.Context, user *entity.User) error

	// FindByID looks a user up by its public identifier.
	FindByID(ctx context.Context, id entity.UserID) (*entity.User, error)

	// FindByEmail looks a user up by its login email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update persists mutable profile fields of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// SetPasswordHash replaces the stored credential of a user.
	SetPasswordHash(ctx context.Context, id entity.UserID, encoded string) error

	// SetSuspended toggles the suspension flag.
	SetSuspended(ctx context.Context, id entity.UserID, suspended bool) error

	// SetDeleted toggles the soft-delete flag.
	SetDeleted(ctx context.Context, id entity.UserID, deleted bool) error

	// SetEmailVerified marks the login email as confirmed.
	SetEmailVerified(ctx context.Context, id entity.UserID, verified bool) error
}
