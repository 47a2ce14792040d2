package entity

import (
	"time"

	"github.com/google/uuid"
)

// DiscountCode is a client-scoped percentage voucher, independent of
// product offers.
type DiscountCode struct {
	ID         uuid.UUID
	Code       string
	Percentage float64
	IsActive   bool
	ClientIDs  []uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EligibleFor reports whether the code may be applied for the client. An
// empty eligibility list means any client may use it.
func (d *DiscountCode) EligibleFor(clientID uuid.UUID) bool {
	if len(d.ClientIDs) == 0 {
		return true
	}
	for _, id := range d.ClientIDs {
		if id == clientID {
			return true
		}
	}

	return false
}
