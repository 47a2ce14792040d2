package repository

import (
	"context"
	"errors"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when a cart lookup yields no row.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the standard operations for cart persistence.
// Implementations load cart lines together with the cart and resolve
// product references where the product still exists.
type CartRepository interface {
	// FindByID retrieves a cart with its lines by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)

	// FindByClientID retrieves the active cart of a client.
	FindByClientID(ctx context.Context, clientID uuid.UUID) (*entity.Cart, error)

	// List returns all carts with their lines.
	List(ctx context.Context) ([]*entity.Cart, error)

	// Create persists a new cart with its lines.
	Create(ctx context.Context, cart *entity.Cart) error

	// Update modifies an existing cart, replacing its lines.
	Update(ctx context.Context, cart *entity.Cart) error

	// Delete removes the cart and its lines.
	Delete(ctx context.Context, id uuid.UUID) error
}
