package auth

import (
	"testing"

	"passport/config"
	domainerrors "passport/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func testCredentialService() *credentialService {
	cfg := &config.Config{Credential: &config.CredentialConfig{Iterations: 20_000}}
	return NewCredentialService(cfg).(*credentialService)
}

func TestCredentialService_DeriveAndVerify(t *testing.T) {
	svc := testCredentialService()

	encoded := svc.Derive("u1a2b3c4d5e6f", "correct horse battery staple")
	assert.NotEmpty(t, encoded)

	err := svc.Verify("u1a2b3c4d5e6f", "correct horse battery staple", encoded)
	assert.NoError(t, err)
}

func TestCredentialService_WrongPassword(t *testing.T) {
	svc := testCredentialService()

	encoded := svc.Derive("u1a2b3c4d5e6f", "correct horse battery staple")

	err := svc.Verify("u1a2b3c4d5e6f", "incorrect horse", encoded)
	assert.ErrorIs(t, err, domainerrors.ErrWrongPassword)
}

func TestCredentialService_SaltBindsCredential(t *testing.T) {
	svc := testCredentialService()

	// The same password under two salts must produce different credentials.
	first := svc.Derive("u1a2b3c4d5e6f", "shared password")
	second := svc.Derive("u9z8y7x6w5v4t", "shared password")
	assert.NotEqual(t, first, second)

	err := svc.Verify("u9z8y7x6w5v4t", "shared password", first)
	assert.ErrorIs(t, err, domainerrors.ErrWrongPassword)
}

func TestCredentialService_UndecodableStoredValue(t *testing.T) {
	svc := testCredentialService()

	err := svc.Verify("u1a2b3c4d5e6f", "anything", "%%not-base64%%")
	assert.ErrorIs(t, err, domainerrors.ErrCredentialDecode)
}

func TestCredentialService_DeriveIsDeterministic(t *testing.T) {
	svc := testCredentialService()

	first := svc.Derive("u1a2b3c4d5e6f", "stable password")
	second := svc.Derive("u1a2b3c4d5e6f", "stable password")
	assert.Equal(t, first, second)
}
