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

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	accounts usecase.AccountUsecase
	logger   *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(accounts usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// Register handles the registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.accounts.Register(c.Request().Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sessionResponse{
		Token: session.Token,
		User:  session.User,
	}, "User registered successfully")
}

// GetProfile returns the caller's own profile.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	public, err := h.accounts.GetProfile(c.Request().Context(), httpmiddleware.SessionToken(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, public, "")
}

// GetUserByID returns the public projection of a user.
func (h *AccountHandler) GetUserByID(c echo.Context) error {
	public, err := h.accounts.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, public, "")
}

// GetUserByEmail returns the public projection of a user.
func (h *AccountHandler) GetUserByEmail(c echo.Context) error {
	public, err := h.accounts.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, public, "")
}

type updateProfileRequest struct {
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// UpdateProfile mutates the caller's profile and returns the rotated session.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.accounts.UpdateProfile(c.Request().Context(), httpmiddleware.SessionToken(c), usecase.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionResponse{Token: out.Token, User: out.User}, "Profile updated")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword rotates the caller's credential and session.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.accounts.ChangePassword(c.Request().Context(), httpmiddleware.SessionToken(c), usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionResponse{Token: out.Token, User: out.User}, "Password changed")
}

// VerifyEmail marks the caller's login email as confirmed.
func (h *AccountHandler) VerifyEmail(c echo.Context) error {
	if err := h.accounts.VerifyEmail(c.Request().Context(), httpmiddleware.SessionToken(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email verified")
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// DeleteAccount soft-deletes the caller's account. The current password
// is required alongside the session token.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid deletion input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accounts.DeleteAccount(c.Request().Context(), httpmiddleware.SessionToken(c), req.Password); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}

// Suspend suspends a target account. Platform administrators only.
func (h *AccountHandler) Suspend(c echo.Context) error {
	return h.setSuspended(c, true, "Account suspended")
}

// Unsuspend lifts a suspension. Platform administrators only.
func (h *AccountHandler) Unsuspend(c echo.Context) error {
	return h.setSuspended(c, false, "Suspension lifted")
}

func (h *AccountHandler) setSuspended(c echo.Context, suspended bool, message string) error {
	err := h.accounts.SetSuspended(c.Request().Context(), httpmiddleware.SessionToken(c), c.Param("id"), suspended)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, message)
}
