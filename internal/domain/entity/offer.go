package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"workbuddy/internal/errors"
)

// DiscountType selects which magnitude field of an offer is meaningful.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixedValue DiscountType = "fixed_value"
)

// OfferState is an explicit tag chosen by the caller. It is never
// derived from the validity window against the current clock.
type OfferState string

const (
	OfferStateActive    OfferState = "active"
	OfferStateScheduled OfferState = "scheduled"
	OfferStateInactive  OfferState = "inactive"
	OfferStateExpired   OfferState = "expired"
)

// Valid reports whether the state is one of the known offer states.
func (s OfferState) Valid() bool {
	switch s {
	case OfferStateActive, OfferStateScheduled, OfferStateInactive, OfferStateExpired:
		return true
	}

	return false
}

// Offer is a time-bounded discount attached to a single product.
// Exactly one of Percentage/Value is meaningful depending on the
// discount type.
type Offer struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	DiscountType DiscountType
	Percentage   float64
	Value        decimal.Decimal
	From         time.Time
	To           time.Time
	State        OfferState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validation failures for offers.
var (
	ErrOfferWindow     = errors.New("offer 'from' date must be strictly before 'to'")
	ErrOfferPercentage = errors.New("offer percentage must be between 0 and 100")
	ErrOfferValue      = errors.New("offer fixed value must not be negative")
	ErrOfferType       = errors.New("unknown discount type")
	ErrOfferState      = errors.New("unknown offer state")
)

// Validate checks the invariants enforced at offer create and update.
func (o *Offer) Validate() error {
	if !o.From.Before(o.To) {
		return ErrOfferWindow
	}
	if !o.State.Valid() {
		return ErrOfferState
	}

	switch o.DiscountType {
	case DiscountTypePercentage:
		if o.Percentage < 0 || o.Percentage > 100 {
			return ErrOfferPercentage
		}
	case DiscountTypeFixedValue:
		if o.Value.IsNegative() {
			return ErrOfferValue
		}
	default:
		return ErrOfferType
	}

	return nil
}
