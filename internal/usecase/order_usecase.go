package usecase

import (
	"context"

	"workbuddy/internal/domain/entity"
	"workbuddy/internal/domain/repository"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for order management. Status
// changes are constrained by the fulfillment state machine.
type OrderUsecase interface {
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error)

	// CreateOrderForClient opens a fresh cart for the client and the
	// order referencing it in one step, used by back-office staff.
	CreateOrderForClient(ctx context.Context, input *AdminCreateOrderInput) (*entity.Order, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// ListUserOrders returns a filtered, paginated view of one user's
	// own orders.
	ListUserOrders(ctx context.Context, userID uuid.UUID, filter repository.OrderFilter) (*UserOrdersOutput, error)
}

// --- Input / Output DTOs ---

// ShippingAddressInput is the address snapshot submitted with an order.
type ShippingAddressInput struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// CreateOrderInput defines the data required to place an order from an
// existing cart. The order total is always recomputed from the cart's
// lines and discount code, never taken from the request.
type CreateOrderInput struct {
	CartID          uuid.UUID            `json:"cart_id" validate:"required"`
	UserID          uuid.UUID            `json:"user_id"`
	UserType        entity.UserType      `json:"user_type"`
	ShippingAddress ShippingAddressInput `json:"shipping_address"`
	PaymentMethod   string               `json:"payment_method" validate:"required"`
}

// AdminCreateOrderInput defines the data for a back-office order that
// creates its cart inline.
type AdminCreateOrderInput struct {
	ClientID        uuid.UUID            `json:"client_id" validate:"required"`
	Items           []CartItemInput      `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressInput `json:"shipping_address"`
	PaymentMethod   string               `json:"payment_method" validate:"required"`
}

// UserOrdersOutput is one page of a user's order history.
type UserOrdersOutput struct {
	Orders     []*entity.Order `json:"orders"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}
