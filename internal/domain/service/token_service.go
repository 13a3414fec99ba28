package service

import (
	"passport/internal/domain/entity"
)

// AuthInfo is the identity projection decoded from a valid session token.
type AuthInfo struct {
	UserID entity.UserID
	Email  string
	Role   entity.Role
}

// TokenService issues and decodes stateless session tokens. Revocation is
// handled separately by the repository.RevocationStore denylist.
type TokenService interface {
	// Issue creates a signed session token for the given identity.
	Issue(email string, userID entity.UserID, role entity.Role) (string, error)

	// Decode validates a token string and returns its identity claims.
	// Any failure, malformed input, bad signature or expiry, returns
	// domainerrors.ErrUnauthorized.
	Decode(token string) (*AuthInfo, error)
}
