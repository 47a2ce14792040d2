package repository

import (
	"context"
	"errors"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOfferNotFound is returned when an offer lookup yields no row.
var ErrOfferNotFound = errors.New("offer not found")

// OfferRepository defines the standard operations for offer persistence.
type OfferRepository interface {
	// FindByID retrieves an offer by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// List returns all offers, optionally filtered by product.
	List(ctx context.Context, productID *uuid.UUID) ([]*entity.Offer, error)

	// Create persists a new offer.
	Create(ctx context.Context, offer *entity.Offer) error

	// Update modifies an existing offer.
	Update(ctx context.Context, offer *entity.Offer) error

	// Delete removes the offer.
	Delete(ctx context.Context, id uuid.UUID) error
}
