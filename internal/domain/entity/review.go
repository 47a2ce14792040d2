package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review score bounds.
const (
	MinReviewScore = 1
	MaxReviewScore = 5
)

// Review is a client's rating of a product. At most one review may
// exist per (client, product) pair; every review write triggers a
// recomputation of the product's rating aggregate.
type Review struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	ProductID uuid.UUID
	Score     int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// ClientName/ProductName are populated on reads that resolve the
	// references, for display only.
	ClientName  string
	ProductName string
}

// ValidScore reports whether score is within [1,5].
func ValidScore(score int) bool {
	return score >= MinReviewScore && score <= MaxReviewScore
}
