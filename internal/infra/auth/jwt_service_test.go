package auth

import (
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		JWT: &config.JWTConfig{
			Secret: "test_session_secret_key_very_long_for_testing",
			Issuer: "localhost",
			TTL:    time.Hour * 24 * 30,
		},
	}
}

func TestJWTService_IssueAndDecode(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := entity.NewUserID()

	token, err := jwtService.Issue("alice@example.com", userID, entity.RoleUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	info, err := jwtService.Decode(token)
	assert.NoError(t, err)
	assert.NotNil(t, info)
	assert.Equal(t, userID, info.UserID)
	assert.Equal(t, "alice@example.com", info.Email)
	assert.Equal(t, entity.RoleUser, info.Role)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	// Using clearly non-JWT input
	info, err := jwtService.Decode("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, info)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestJWTService_WrongSecret(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	other, err := NewJWTService(&config.Config{
		JWT: &config.JWTConfig{
			Secret: "a_completely_different_secret_key_for_testing",
			Issuer: "localhost",
			TTL:    time.Hour,
		},
	})
	assert.NoError(t, err)

	token, err := other.Issue("alice@example.com", entity.NewUserID(), entity.RoleUser)
	assert.NoError(t, err)

	info, err := jwtService.Decode(token)
	assert.Error(t, err)
	assert.Nil(t, info)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	expired, err := NewJWTService(&config.Config{
		JWT: &config.JWTConfig{
			Secret: "test_session_secret_key_very_long_for_testing",
			Issuer: "localhost",
			TTL:    -time.Minute,
		},
	})
	assert.NoError(t, err)

	token, err := expired.Issue("alice@example.com", entity.NewUserID(), entity.RoleUser)
	assert.NoError(t, err)

	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	info, err := jwtService.Decode(token)
	assert.Error(t, err)
	assert.Nil(t, info)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{JWT: &config.JWTConfig{}})
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}
