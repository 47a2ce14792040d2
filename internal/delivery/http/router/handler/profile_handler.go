package handler

import (
	"log/slog"
	"net/http"

	"workbuddy/internal/delivery/http/response"
	"workbuddy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler serves the authenticated user's own account record.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, logger: logger}
}

// GetProfile returns the caller's own account.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, ok := currentUserUUID(c)
	userType, typeOK := currentUserType(c)
	if !ok || !typeOK {
		return response.Unauthorized(c, "TOKEN_INVALID", "This account has no stored profile")
	}

	account, err := h.uc.GetProfile(c.Request().Context(), userType, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "")
}

// UpdateProfile applies a partial update to the caller's own account.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	id, ok := currentUserUUID(c)
	userType, typeOK := currentUserType(c)
	if !ok || !typeOK {
		return response.Unauthorized(c, "TOKEN_INVALID", "This account has no stored profile")
	}

	var input *usecase.UpdateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	account, err := h.uc.UpdateProfile(c.Request().Context(), userType, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "Profile updated")
}
