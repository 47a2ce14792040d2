package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"workbuddy/internal/delivery/http/response"
	"workbuddy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DiscountHandler holds dependencies for discount code handlers.
type DiscountHandler struct {
	uc     usecase.DiscountCodeUsecase
	logger *slog.Logger
}

// NewDiscountHandler is the constructor for DiscountHandler, injected by Fx.
func NewDiscountHandler(uc usecase.DiscountCodeUsecase, logger *slog.Logger) *DiscountHandler {
	return &DiscountHandler{uc: uc, logger: logger}
}

// ListCodes returns every discount code.
func (h *DiscountHandler) ListCodes(c echo.Context) error {
	codes, err := h.uc.ListCodes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, codes, "")
}

// GetCode returns one discount code.
func (h *DiscountHandler) GetCode(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid discount code ID")
	}

	code, err := h.uc.GetCode(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, code, "")
}

// CreateCode creates a discount code.
func (h *DiscountHandler) CreateCode(c echo.Context) error {
	var input *usecase.DiscountCodeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid discount code input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	code, err := h.uc.CreateCode(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, code, "Discount code created")
}

// UpdateCode replaces a discount code's fields.
func (h *DiscountHandler) UpdateCode(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid discount code ID")
	}

	var input *usecase.DiscountCodeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid discount code input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	code, err := h.uc.UpdateCode(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, code, "Discount code updated")
}

// DeleteCode removes a discount code.
func (h *DiscountHandler) DeleteCode(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid discount code ID")
	}

	if err := h.uc.DeleteCode(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Discount code deleted")
}

// CodeImage streams the discount code as a PNG QR image. The optional
// size query parameter overrides the configured pixel size.
func (h *DiscountHandler) CodeImage(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid discount code ID")
	}

	size := 0
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 0 {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid image size")
		}
	}

	png, err := h.uc.CodeImage(c.Request().Context(), id, size)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
