package usecase

import (
	"context"
	"time"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountCodeUsecase defines the interface for discount code management.
type DiscountCodeUsecase interface {
	ListCodes(ctx context.Context) ([]*entity.DiscountCode, error)
	GetCode(ctx context.Context, id uuid.UUID) (*entity.DiscountCode, error)
	CreateCode(ctx context.Context, input *DiscountCodeInput) (*entity.DiscountCode, error)
	UpdateCode(ctx context.Context, id uuid.UUID, input *DiscountCodeInput) (*entity.DiscountCode, error)
	DeleteCode(ctx context.Context, id uuid.UUID) error

	// CodeImage renders the code as a PNG QR image for printing or
	// in-store scanning.
	CodeImage(ctx context.Context, id uuid.UUID, size int) ([]byte, error)
}

// OfferUsecase defines the interface for product offer management.
type OfferUsecase interface {
	ListOffers(ctx context.Context, productID *uuid.UUID) ([]*entity.Offer, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*entity.Offer, error)
	CreateOffer(ctx context.Context, input *OfferInput) (*entity.Offer, error)
	UpdateOffer(ctx context.Context, id uuid.UUID, input *OfferInput) (*entity.Offer, error)
	DeleteOffer(ctx context.Context, id uuid.UUID) error
}

// --- Input DTOs ---

// DiscountCodeInput defines the data required to create or replace a
// discount code.
type DiscountCodeInput struct {
	Code       string      `json:"code" validate:"required"`
	Percentage float64     `json:"percentage" validate:"min=0,max=100"`
	IsActive   bool        `json:"is_active"`
	ClientIDs  []uuid.UUID `json:"client_ids"`
}

// OfferInput defines the data required to create or replace an offer.
type OfferInput struct {
	ProductID    uuid.UUID           `json:"product_id" validate:"required"`
	DiscountType entity.DiscountType `json:"discount_type" validate:"required"`
	Percentage   float64             `json:"percentage"`
	Value        decimal.Decimal     `json:"value"`
	From         time.Time           `json:"from"`
	To           time.Time           `json:"to"`
	State        entity.OfferState   `json:"state"`
}
