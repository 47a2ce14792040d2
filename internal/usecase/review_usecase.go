package usecase

import (
	"context"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewUsecase defines the interface for product reviews. Every write
// recomputes the product's rating aggregate in the same transaction.
// Update and delete take the calling client's ID and reject writes to
// another client's review; uuid.Nil marks a staff caller, who may
// moderate any review.
type ReviewUsecase interface {
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
	ListClientReviews(ctx context.Context, clientID uuid.UUID) ([]*entity.Review, error)
	CreateReview(ctx context.Context, input *CreateReviewInput) (*entity.Review, error)
	UpdateReview(ctx context.Context, id, callerID uuid.UUID, input *UpdateReviewInput) (*entity.Review, error)
	DeleteReview(ctx context.Context, id, callerID uuid.UUID) error
}

// --- Input DTOs ---

// CreateReviewInput defines the data required to review a product.
type CreateReviewInput struct {
	ClientID  uuid.UUID `json:"client_id"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Score     int       `json:"score" validate:"min=1,max=5"`
	Comment   string    `json:"comment" validate:"required"`
}

// UpdateReviewInput defines the mutable review fields.
type UpdateReviewInput struct {
	Score   *int    `json:"score,omitempty"`
	Comment *string `json:"comment,omitempty"`
}
