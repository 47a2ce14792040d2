package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"workbuddy/internal/delivery/http/response"
	"workbuddy/internal/domain/entity"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// ListOrders returns every order for back-office staff.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// GetOrder returns one order.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// CreateOrder places an order from an existing cart. Clients always
// order as themselves; the body's user fields only apply to staff.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var input *usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if userType, ok := currentUserType(c); ok && userType == entity.UserTypeClient {
		userID, idOK := currentUserUUID(c)
		if !idOK {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in session")
		}
		input.UserID = userID
		input.UserType = userType
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created")
}

// CreateOrderForClient opens a cart and order for a client in one step.
func (h *OrderHandler) CreateOrderForClient(c echo.Context) error {
	var input *usecase.AdminCreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.CreateOrderForClient(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created")
}

// UpdateStatus moves the order through the fulfillment state machine.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	var req struct {
		Status entity.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// DeleteOrder removes a pending order.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted")
}

// ListOwnOrders returns the caller's order history, filtered and paged
// through query parameters.
func (h *OrderHandler) ListOwnOrders(c echo.Context) error {
	userID, ok := currentUserUUID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "This account has no order history")
	}

	filter, err := orderFilterFromQuery(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	output, err := h.uc.ListUserOrders(c.Request().Context(), userID, filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

func orderFilterFromQuery(c echo.Context) (repository.OrderFilter, error) {
	var filter repository.OrderFilter

	filter.Status = entity.OrderStatus(c.QueryParam("status"))
	if filter.Status != "" && !filter.Status.Valid() {
		return filter, errors.New("unknown order status filter")
	}

	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid 'from' date, expected RFC3339")
		}
		filter.From = from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid 'to' date, expected RFC3339")
		}
		filter.To = to
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, errors.New("invalid page number")
		}
		filter.Page = page
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, errors.New("invalid page limit")
		}
		filter.Limit = limit
	}

	return filter, nil
}
