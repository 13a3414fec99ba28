// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// UserID is the immutable identifier of a user. It doubles as the salt for
// credential derivation, so an id must never be reused for a different
// person, not even ids of soft-deleted accounts.
type UserID = string

// userIDAlphabet excludes visually ambiguous characters ('0', 'i', 'j', 'o')
// and 'u', which is reserved for the id prefix.
const userIDAlphabet = "123456789abcdefghkmnpqrstvwxzy"

const userIDLength = 12

// NewUserID generates a fresh user id, e.g. "u4f9d13a42ftr".
func NewUserID() UserID {
	return "u" + gonanoid.MustGenerate(userIDAlphabet, userIDLength)
}

// User is the core entity in the system, representing a single account.
// The password is never stored in plaintext; PasswordHash holds the
// base64-encoded credential digest derived with the user's id as salt.
type User struct {
	ID            UserID    // Immutable identifier, also the credential salt.
	Email         string    // Primary contact email, used as the login identifier.
	FirstName     string    // Optional given name.
	LastName      string    // Optional family name.
	PasswordHash  string    // Base64-encoded credential digest.
	EmailVerified bool      // Set once the external verification flow completes.
	IsSuspended   bool      // Suspended accounts cannot log in or hold sessions.
	IsDeleted     bool      // Soft-delete marker; the row (and id) is retained forever.
	Role          Role      // Flat role used as the token audience.
	CreatedAt     time.Time // Timestamp of account creation.
	UpdatedAt     time.Time // Timestamp of the last modification.
}

// UserPublic is the externally visible projection of a User.
type UserPublic struct {
	ID        UserID    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the public projection of the user.
func (u *User) Public() *UserPublic {
	return &UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}
