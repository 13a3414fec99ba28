// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"

	"passport/config"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
)

// credentialService is a concrete implementation of the CredentialService
// interface using PBKDF2 with HMAC-SHA256. The caller supplies the salt, so
// the same password derives different credentials for different accounts.
type credentialService struct {
	iterations int
}

// NewCredentialService is the constructor for credentialService.
func NewCredentialService(cfg *config.Config) service.CredentialService {
	return &credentialService{iterations: cfg.Credential.Iterations}
}

// Derive computes the base64-encoded PBKDF2 credential for a password.
func (s *credentialService) Derive(salt, password string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), s.iterations, sha256.Size, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}

// Verify checks an attempted password against a stored encoded credential.
// The comparison runs over the raw derived bytes in constant time.
func (s *credentialService) Verify(salt, attempted, storedEncoded string) error {
	stored, err := base64.StdEncoding.DecodeString(storedEncoded)
	if err != nil {
		return domainerrors.ErrCredentialDecode.WrapMessage("decode stored credential")
	}

	derived := pbkdf2.Key([]byte(attempted), []byte(salt), s.iterations, sha256.Size, sha256.New)
	if subtle.ConstantTimeCompare(derived, stored) != 1 {
		return domainerrors.ErrWrongPassword
	}
	return nil
}
