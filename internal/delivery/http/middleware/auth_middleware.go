// Package middleware contains the echo middlewares of the HTTP delivery.
package middleware

import (
	"strings"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	KeyAuthInfo     = "authInfo"
	KeySessionToken = "sessionToken"
)

// AuthMiddleware provides middleware for session authentication and authorization.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate validates the bearer token through the session usecase, which
// checks the signature, the denylist and the live account state. Errors flow
// to the central error handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := BearerToken(c)
		if err != nil {
			return err
		}

		info, err := m.sessions.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(KeyAuthInfo, info)
		c.Set(KeySessionToken, token)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated caller's
// role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(required entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			info, ok := AuthInfo(c)
			if !ok {
				return domainerrors.ErrForbidden.WrapMessage("identity missing from context")
			}

			if info.Role != required {
				return domainerrors.ErrForbidden.WrapMessage("require " + required.String() + " role")
			}

			return next(c)
		}
	}
}

// BearerToken extracts the session token from the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", domainerrors.ErrUnauthorized.WrapMessage("authorization header missing")
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return "", domainerrors.ErrUnauthorized.WrapMessage("authorization header is not a bearer token")
	}

	return token, nil
}

// AuthInfo returns the identity stored by Authenticate.
func AuthInfo(c echo.Context) (*service.AuthInfo, bool) {
	info, ok := c.Get(KeyAuthInfo).(*service.AuthInfo)

	return info, ok
}

// SessionToken returns the raw token stored by Authenticate.
func SessionToken(c echo.Context) string {
	token, _ := c.Get(KeySessionToken).(string)

	return token
}
