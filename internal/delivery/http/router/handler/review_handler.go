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

// ReviewHandler holds dependencies for product review handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, logger: logger}
}

// ListProductReviews returns every review of a product.
func (h *ReviewHandler) ListProductReviews(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	reviews, err := h.uc.ListProductReviews(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "")
}

// ListOwnReviews returns the authenticated client's reviews.
func (h *ReviewHandler) ListOwnReviews(c echo.Context) error {
	clientID, ok := currentUserUUID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "This account has no reviews")
	}

	reviews, err := h.uc.ListClientReviews(c.Request().Context(), clientID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "")
}

// CreateReview stores a review authored by the caller.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var input *usecase.CreateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if userType, ok := currentUserType(c); ok && userType == entity.UserTypeClient {
		clientID, idOK := currentUserUUID(c)
		if !idOK {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in session")
		}
		input.ClientID = clientID
	}

	review, err := h.uc.CreateReview(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, review, "Review created")
}

// UpdateReview applies a partial update to a review. Clients may only
// touch their own reviews; staff callers may moderate any review.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid review ID")
	}

	var input *usecase.UpdateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	callerID, ok := reviewCaller(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in session")
	}

	review, err := h.uc.UpdateReview(c.Request().Context(), id, callerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, review, "Review updated")
}

// DeleteReview removes a review, subject to the same ownership rule as
// updates.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid review ID")
	}

	callerID, ok := reviewCaller(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in session")
	}

	if err := h.uc.DeleteReview(c.Request().Context(), id, callerID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Review deleted")
}

// reviewCaller maps the session identity onto the usecase's ownership
// argument: the client's own ID, or uuid.Nil for staff callers.
func reviewCaller(c echo.Context) (uuid.UUID, bool) {
	userType, ok := currentUserType(c)
	if !ok || userType != entity.UserTypeClient {
		return uuid.Nil, true
	}

	return currentUserUUID(c)
}
