package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorites is a user's saved product set. One document per
// (UserID, UserType) pair, enforced by a compound unique index; the
// document is created lazily on first access.
type Favorites struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	UserType   UserType
	ProductIDs []uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Contains reports whether productID is already saved.
func (f *Favorites) Contains(productID uuid.UUID) bool {
	for _, id := range f.ProductIDs {
		if id == productID {
			return true
		}
	}

	return false
}

// Add appends productID if absent and reports whether it was added.
func (f *Favorites) Add(productID uuid.UUID) bool {
	if f.Contains(productID) {
		return false
	}
	f.ProductIDs = append(f.ProductIDs, productID)

	return true
}

// Remove drops productID and reports whether it was present.
func (f *Favorites) Remove(productID uuid.UUID) bool {
	for i, id := range f.ProductIDs {
		if id == productID {
			f.ProductIDs = append(f.ProductIDs[:i], f.ProductIDs[i+1:]...)

			return true
		}
	}

	return false
}
