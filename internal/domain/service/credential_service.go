// Package service defines the domain service interfaces implemented by the
// infrastructure layer.
package service

// CredentialService derives and verifies password credentials. The salt is a
// per-user value supplied by the caller, so a credential is only meaningful
// together with the account it was derived for.
type CredentialService interface {
	// Derive computes the encoded credential for a password and salt.
	Derive(salt, password string) string

	// Verify checks an attempted password against a stored encoded
	// credential. Returns domainerrors.ErrWrongPassword on mismatch and
	// domainerrors.ErrCredentialDecode when the stored value cannot be
	// decoded.
	Verify(salt, attempted, storedEncoded string) error
}
