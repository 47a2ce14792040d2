package usecase

import (
	"context"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// FavoritesUsecase defines the interface for a user's saved products.
// The backing document is created lazily on first access.
type FavoritesUsecase interface {
	GetFavorites(ctx context.Context, userID uuid.UUID, userType entity.UserType) (*FavoritesOutput, error)
	AddFavorite(ctx context.Context, userID uuid.UUID, userType entity.UserType, productID uuid.UUID) (*FavoritesOutput, error)
	RemoveFavorite(ctx context.Context, userID uuid.UUID, userType entity.UserType, productID uuid.UUID) (*FavoritesOutput, error)
}

// SettingsUsecase defines the interface for user preference documents,
// also created lazily with defaults.
type SettingsUsecase interface {
	GetSettings(ctx context.Context, userID uuid.UUID, userType entity.UserType) (*entity.UserSettings, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, userType entity.UserType, input *PreferencesInput) (*entity.UserSettings, error)
	AddAddress(ctx context.Context, userID uuid.UUID, userType entity.UserType, input *AddressInput) (*entity.UserSettings, error)
	UpdateAddress(ctx context.Context, userID uuid.UUID, userType entity.UserType, addressID uuid.UUID, input *AddressInput) (*entity.UserSettings, error)
	DeleteAddress(ctx context.Context, userID uuid.UUID, userType entity.UserType, addressID uuid.UUID) (*entity.UserSettings, error)
	SetDefaultAddress(ctx context.Context, userID uuid.UUID, userType entity.UserType, addressID uuid.UUID) (*entity.UserSettings, error)
}

// --- Input / Output DTOs ---

// FavoritesOutput is the favorites document with resolved products.
type FavoritesOutput struct {
	Favorites *entity.Favorites `json:"favorites"`
	Products  []*entity.Product `json:"products"`
}

// PreferencesInput defines the mutable preference flags. Nil pointers
// leave the stored value untouched.
type PreferencesInput struct {
	EmailNotifications *bool `json:"email_notifications,omitempty"`
	Promotions         *bool `json:"promotions,omitempty"`
	OrderUpdates       *bool `json:"order_updates,omitempty"`
	ShareProfileData   *bool `json:"share_profile_data,omitempty"`
}

// AddressInput defines the data required to save a shipping address.
type AddressInput struct {
	Title      string `json:"title" validate:"required"`
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}
