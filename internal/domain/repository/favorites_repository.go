package repository

import (
	"context"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// FavoritesRepository defines operations for a user's saved product set.
type FavoritesRepository interface {
	// FindOrCreate returns the favorites document for the user,
	// creating an empty one when none exists yet.
	FindOrCreate(ctx context.Context, userID uuid.UUID, userType entity.UserType) (*entity.Favorites, error)

	// Update persists the product ID set of an existing document.
	Update(ctx context.Context, favorites *entity.Favorites) error
}
