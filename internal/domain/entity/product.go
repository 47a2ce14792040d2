package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. AverageRating and NumberOfReviews are
// derived from the reviews collection and must never be authored
// directly; they are recomputed after every review write.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	ImageKey    string // provider-side identifier used to delete replaced images

	AverageRating   float64
	NumberOfReviews int

	CreatedAt time.Time
	UpdatedAt time.Time
}
