package usecase

import (
	"context"
	"io"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogUsecase defines the interface for product management.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, category string) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// --- Input DTOs ---

// ProductImage is an uploaded image stream with its declared type.
type ProductImage struct {
	Reader      io.Reader
	ContentType string
	Filename    string
}

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`

	// Image is optional; when present it is stored in the media bucket
	// and the resulting URL attached to the product.
	Image *ProductImage `json:"-"`
}

// UpdateProductInput defines the mutable product fields. Nil pointers
// leave the stored value untouched.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`

	Image *ProductImage `json:"-"`
}
