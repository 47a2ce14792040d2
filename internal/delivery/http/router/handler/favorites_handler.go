package handler

import (
	"log/slog"
	"net/http"

	"workbuddy/internal/delivery/http/response"
	"workbuddy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FavoritesHandler holds dependencies for saved product handlers.
type FavoritesHandler struct {
	uc     usecase.FavoritesUsecase
	logger *slog.Logger
}

// NewFavoritesHandler is the constructor for FavoritesHandler, injected by Fx.
func NewFavoritesHandler(uc usecase.FavoritesUsecase, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{uc: uc, logger: logger}
}

// GetFavorites returns the caller's saved products.
func (h *FavoritesHandler) GetFavorites(c echo.Context) error {
	userID, ok := currentUserUUID(c)
	userType, typeOK := currentUserType(c)
	if !ok || !typeOK {
		return response.Unauthorized(c, "TOKEN_INVALID", "This account has no favorites")
	}

	output, err := h.uc.GetFavorites(c.Request().Context(), userID, userType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// AddFavorite saves a product into the caller's set.
func (h *FavoritesHandler) AddFavorite(c echo.Context) error {
	userID, ok := currentUserUUID(c)
	userType, typeOK := currentUserType(c)
	if !ok || !typeOK {
		return response.Unauthorized(c, "TOKEN_INVALID", "This account has no favorites")
	}

	productID, err := pathUUID(c, "productID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	output, err := h.uc.AddFavorite(c.Request().Context(), userID, userType, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Favorite added")
}

// RemoveFavorite drops a product from the caller's set.
func (h *FavoritesHandler) RemoveFavorite(c echo.Context) error {
	userID, ok := currentUserUUID(c)
	userType, typeOK := currentUserType(c)
	if !ok || !typeOK {
		return response.Unauthorized(c, "TOKEN_INVALID", "This account has no favorites")
	}

	productID, err := pathUUID(c, "productID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	output, err := h.uc.RemoveFavorite(c.Request().Context(), userID, userType, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Favorite removed")
}
