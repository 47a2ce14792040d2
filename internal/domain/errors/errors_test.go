package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Client mistakes map to 4xx and provider breakage stays a server fault.
func TestCatalogHTTPCodes(t *testing.T) {
	cases := []struct {
		name string
		err  *BaseError
		code int
	}{
		{"user not found", ErrUserNotFound, http.StatusNotFound},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"order not deletable", ErrOrderNotDeletable, http.StatusBadRequest},
		{"order transition", ErrOrderTransition, http.StatusBadRequest},
		{"payment not pending", ErrPaymentNotPending, http.StatusBadRequest},
		{"payment gateway failed", ErrPaymentGatewayFailed, http.StatusInternalServerError},
		{"review not owned", ErrReviewNotOwned, http.StatusForbidden},
		{"validation failed", ErrValidationFailed, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.HTTPCode())
		})
	}
}

func TestBaseError_WithDetails(t *testing.T) {
	detailed := ErrPaymentGatewayFailed.WithDetails("connection refused")

	assert.Equal(t, "connection refused", detailed.Details())
	assert.Equal(t, ErrPaymentGatewayFailed.HTTPCode(), detailed.HTTPCode())
	assert.Equal(t, ErrPaymentGatewayFailed.ErrorCode(), detailed.ErrorCode())

	// The catalog entry itself keeps empty details.
	assert.Empty(t, ErrPaymentGatewayFailed.Details())
}

func TestBaseError_IsMatchesByErrorCode(t *testing.T) {
	detailed := ErrPaymentGatewayFailed.WithDetails("timeout after 30s")

	assert.True(t, stderrors.Is(detailed, ErrPaymentGatewayFailed))
	assert.False(t, stderrors.Is(detailed, ErrPaymentNotPending))
	assert.False(t, stderrors.Is(stderrors.New("timeout after 30s"), ErrPaymentGatewayFailed))
}
