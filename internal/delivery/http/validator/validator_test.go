package validator

import (
	"testing"

	domainerrors "workbuddy/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func TestValidator_Validate_Passes(t *testing.T) {
	v := New()

	err := v.Validate(&loginForm{Email: "ops@workbuddy.dev", Password: "hunter2!"})
	assert.NoError(t, err)
}

func TestValidator_Validate_MapsFailuresToAppError(t *testing.T) {
	v := New()

	err := v.Validate(&loginForm{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr *domainerrors.BaseError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Contains(t, appErr.Details(), "Email")
	assert.Contains(t, appErr.Details(), "Password")
}
