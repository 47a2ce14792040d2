package usecase

import (
	"context"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartUsecase defines the interface for shopping cart operations.
// Every mutation recomputes and persists the cart total.
type CartUsecase interface {
	ListCarts(ctx context.Context) ([]*entity.Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	GetClientCart(ctx context.Context, clientID uuid.UUID) (*entity.Cart, error)
	CreateCart(ctx context.Context, input *CreateCartInput) (*entity.Cart, error)
	AddItem(ctx context.Context, cartID uuid.UUID, input *CartItemInput) (*entity.Cart, error)
	UpdateItem(ctx context.Context, cartID uuid.UUID, input *CartItemInput) (*entity.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (*entity.Cart, error)
	ApplyDiscountCode(ctx context.Context, cartID uuid.UUID, code string) (*entity.Cart, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error
}

// --- Input DTOs ---

// CreateCartInput defines the data required to open a cart.
type CreateCartInput struct {
	ClientID uuid.UUID       `json:"client_id" validate:"required"`
	Items    []CartItemInput `json:"items" validate:"dive"`
}

// CartItemInput is a (product, quantity) pair submitted by the client.
type CartItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=1"`
}

// CartTotals breaks a computed total down for display.
type CartTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}
