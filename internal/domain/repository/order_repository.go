package repository

import (
	"context"
	"errors"
	"time"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order lookup yields no row.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter narrows and pages order listings for a single user.
// Zero values mean no constraint; Page is 1-based.
type OrderFilter struct {
	Status entity.OrderStatus
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves an order by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List returns all orders.
	List(ctx context.Context) ([]*entity.Order, error)

	// ListByUser returns a page of the user's orders matching the
	// filter, newest first, together with the total match count.
	ListByUser(ctx context.Context, userID uuid.UUID, filter OrderFilter) ([]*entity.Order, int64, error)

	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// Update modifies an existing order.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes the order.
	Delete(ctx context.Context, id uuid.UUID) error
}
