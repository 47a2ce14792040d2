package handler

import (
	"log/slog"
	"net/http"

	"workbuddy/internal/delivery/http/response"
	"workbuddy/internal/domain/entity"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SettingsHandler holds dependencies for user settings handlers.
type SettingsHandler struct {
	uc     usecase.SettingsUsecase
	logger *slog.Logger
}

// NewSettingsHandler is the constructor for SettingsHandler, injected by Fx.
func NewSettingsHandler(uc usecase.SettingsUsecase, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, logger: logger}
}

// GetSettings returns the caller's settings document.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	userID, userType, err := h.identity(c)
	if err != nil {
		return err
	}

	settings, err := h.uc.GetSettings(c.Request().Context(), userID, userType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "")
}

// UpdatePreferences applies the non-nil preference flags.
func (h *SettingsHandler) UpdatePreferences(c echo.Context) error {
	userID, userType, err := h.identity(c)
	if err != nil {
		return err
	}

	var input *usecase.PreferencesInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid preferences input")
	}

	settings, err := h.uc.UpdatePreferences(c.Request().Context(), userID, userType, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Preferences updated")
}

// AddAddress saves a shipping address.
func (h *SettingsHandler) AddAddress(c echo.Context) error {
	userID, userType, err := h.identity(c)
	if err != nil {
		return err
	}

	var input *usecase.AddressInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	settings, err := h.uc.AddAddress(c.Request().Context(), userID, userType, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, settings, "Address added")
}

// UpdateAddress replaces a saved shipping address.
func (h *SettingsHandler) UpdateAddress(c echo.Context) error {
	userID, userType, err := h.identity(c)
	if err != nil {
		return err
	}

	addressID, err := pathUUID(c, "addressID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid address ID")
	}

	var input *usecase.AddressInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	settings, err := h.uc.UpdateAddress(c.Request().Context(), userID, userType, addressID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Address updated")
}

// DeleteAddress removes a saved shipping address.
func (h *SettingsHandler) DeleteAddress(c echo.Context) error {
	userID, userType, err := h.identity(c)
	if err != nil {
		return err
	}

	addressID, err := pathUUID(c, "addressID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid address ID")
	}

	settings, err := h.uc.DeleteAddress(c.Request().Context(), userID, userType, addressID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Address deleted")
}

// SetDefaultAddress flags one saved address as the default.
func (h *SettingsHandler) SetDefaultAddress(c echo.Context) error {
	userID, userType, err := h.identity(c)
	if err != nil {
		return err
	}

	addressID, err := pathUUID(c, "addressID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid address ID")
	}

	settings, err := h.uc.SetDefaultAddress(c.Request().Context(), userID, userType, addressID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Default address set")
}

func (h *SettingsHandler) identity(c echo.Context) (uuid.UUID, entity.UserType, error) {
	userID, ok := currentUserUUID(c)
	userType, typeOK := currentUserType(c)
	if !ok || !typeOK {
		return uuid.Nil, "", response.Unauthorized(c, "TOKEN_INVALID", "This account has no settings")
	}

	return userID, userType, nil
}
