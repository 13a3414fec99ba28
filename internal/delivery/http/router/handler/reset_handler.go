package handler

import (
	"log/slog"
	"net/http"
	"time"

	"passport/internal/delivery/http/response"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ResetHandler holds dependencies for the password-reset handshake.
type ResetHandler struct {
	resets usecase.ResetUsecase
	logger *slog.Logger
}

// NewResetHandler is the constructor for ResetHandler, injected by Fx.
func NewResetHandler(resets usecase.ResetUsecase, logger *slog.Logger) *ResetHandler {
	return &ResetHandler{resets: resets, logger: logger}
}

type requestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Request opens a reset handshake and mails out the ticket.
func (h *ResetHandler) Request(c echo.Context) error {
	var req requestResetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.resets.RequestReset(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset requested")
}

type submitResetRequest struct {
	ResetID     string    `json:"resetId" validate:"required"`
	NewPassword string    `json:"newPassword" validate:"required,min=8"`
	ExpiresAt   time.Time `json:"expiresAt" validate:"required"`
}

// Submit consumes a ticket and installs the new password.
func (h *ResetHandler) Submit(c echo.Context) error {
	var req submitResetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset form")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.resets.SubmitReset(c.Request().Context(), usecase.SubmitResetInput{
		ResetID:     req.ResetID,
		NewPassword: req.NewPassword,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset completed")
}
