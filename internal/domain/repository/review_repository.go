package repository

import (
	"context"
	"errors"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// Review lookup errors.
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("client already reviewed this product")
)

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// FindByID retrieves a review by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// ListByProduct returns every review of a product.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// ListByClient returns every review written by a client.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Review, error)

	// Create persists a new review. It returns ErrDuplicateReview when
	// the (client, product) pair already has one.
	Create(ctx context.Context, review *entity.Review) error

	// Update modifies an existing review.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes the review.
	Delete(ctx context.Context, id uuid.UUID) error
}
