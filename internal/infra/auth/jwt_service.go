package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// sessionClaims is the claim set carried by a session token. The role rides
// in the audience claim and the login email is a private claim.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using
// the JWT standard with HS256 signing.
type jwtService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &jwtService{
		secret: []byte(cfg.JWT.Secret),
		issuer: cfg.JWT.Issuer,
		ttl:    cfg.JWT.TTL,
	}, nil
}

// Issue creates a signed session token for the given identity.
func (s *jwtService) Issue(email string, userID entity.UserID, role entity.Role) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{role.String()},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}
	return signed, nil
}

// Decode validates a token string and returns its identity claims. Every
// failure mode maps to the same unauthorized kind so a caller cannot tell a
// bad signature from an expired or malformed token.
func (s *jwtService) Decode(tokenString string) (*service.AuthInfo, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("decode session token")
	}

	role := entity.RoleAnon
	if len(claims.Audience) > 0 {
		role = entity.Role(claims.Audience[0]).OrDefault()
	}

	return &service.AuthInfo{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   role,
	}, nil
}
