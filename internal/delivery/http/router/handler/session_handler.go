// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	httpmiddleware "passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler holds dependencies for session-related handlers.
type SessionHandler struct {
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(sessions usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Login handles the login request. Any bearer token the client already holds
// rides along so a blocked account can burn it.
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	presented, _ := httpmiddleware.BearerToken(c)

	out, err := h.sessions.Login(c.Request().Context(), usecase.LoginInput{
		Email:          req.Email,
		Password:       req.Password,
		PresentedToken: presented,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionResponse{Token: out.Token, User: out.User}, "Login successful")
}

// Logout denylists the presented token. A request with no token at all
// still succeeds; there is just nothing to revoke.
func (h *SessionHandler) Logout(c echo.Context) error {
	token, _ := httpmiddleware.BearerToken(c)

	if err := h.sessions.Logout(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

type checkPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// CheckPassword re-verifies the caller's password for sensitive confirmations.
func (h *SessionHandler) CheckPassword(c echo.Context) error {
	var req checkPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token := httpmiddleware.SessionToken(c)
	if err := h.sessions.CheckPassword(c.Request().Context(), token, req.Password); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password confirmed")
}
