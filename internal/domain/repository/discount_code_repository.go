package repository

import (
	"context"
	"errors"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// Discount code lookup errors.
var (
	ErrDiscountCodeNotFound = errors.New("discount code not found")
	ErrDuplicateCode        = errors.New("discount code already exists")
)

// DiscountCodeRepository defines the standard operations for discount
// code persistence.
type DiscountCodeRepository interface {
	// FindByID retrieves a discount code by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DiscountCode, error)

	// FindByCode retrieves a discount code by its code string.
	FindByCode(ctx context.Context, code string) (*entity.DiscountCode, error)

	// List returns all discount codes.
	List(ctx context.Context) ([]*entity.DiscountCode, error)

	// Create persists a new discount code.
	Create(ctx context.Context, dc *entity.DiscountCode) error

	// Update modifies an existing discount code.
	Update(ctx context.Context, dc *entity.DiscountCode) error

	// Delete removes the discount code.
	Delete(ctx context.Context, id uuid.UUID) error
}
