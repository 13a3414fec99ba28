// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	govalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	domainerrors "passport/internal/domain/errors"
)

type echoValidator struct {
	validate *govalidator.Validate
}

// New builds the validator installed on the echo server.
func New() echo.Validator {
	return &echoValidator{validate: govalidator.New()}
}

// Validate checks the struct tags of a bound request and maps failures to the
// domain validation error so the error middleware renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
