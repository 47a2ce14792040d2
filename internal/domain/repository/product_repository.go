package repository

import (
	"context"
	"errors"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product lookup yields no row.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for catalog persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs retrieves the products whose IDs appear in ids. Missing
	// IDs are silently absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// List returns all products, optionally filtered by category.
	List(ctx context.Context, category string) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// UpdateRating overwrites the rating aggregate of a product.
	UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int) error

	// Delete removes the product.
	Delete(ctx context.Context, id uuid.UUID) error
}
