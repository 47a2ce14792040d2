package handler

import (
	"log/slog"
	"net/http"

	"workbuddy/internal/delivery/http/response"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OfferHandler holds dependencies for product offer handlers.
type OfferHandler struct {
	uc     usecase.OfferUsecase
	logger *slog.Logger
}

// NewOfferHandler is the constructor for OfferHandler, injected by Fx.
func NewOfferHandler(uc usecase.OfferUsecase, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{uc: uc, logger: logger}
}

// ListOffers returns all offers, optionally filtered by the product_id
// query parameter.
func (h *OfferHandler) ListOffers(c echo.Context) error {
	var productID *uuid.UUID
	if raw := c.QueryParam("product_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID filter")
		}
		productID = &parsed
	}

	offers, err := h.uc.ListOffers(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, offers, "")
}

// GetOffer returns one offer.
func (h *OfferHandler) GetOffer(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid offer ID")
	}

	offer, err := h.uc.GetOffer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, offer, "")
}

// CreateOffer creates a product offer.
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var input *usecase.OfferInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	offer, err := h.uc.CreateOffer(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, offer, "Offer created")
}

// UpdateOffer replaces an offer's fields.
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid offer ID")
	}

	var input *usecase.OfferInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	offer, err := h.uc.UpdateOffer(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, offer, "Offer updated")
}

// DeleteOffer removes an offer.
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid offer ID")
	}

	if err := h.uc.DeleteOffer(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Offer deleted")
}
