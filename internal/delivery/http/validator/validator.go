// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	domainerrors "workbuddy/internal/domain/errors"

	validate "github.com/go-playground/validator/v10"
)

// Validator wraps a validator instance for echo.
type Validator struct {
	validate *validate.Validate
}

// New creates an echo-compatible request validator.
func New() *Validator {
	return &Validator{validate: validate.New()}
}

// Validate checks struct tags and maps failures onto the application
// validation error.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
