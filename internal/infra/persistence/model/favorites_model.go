package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoritesModel mirrors the 'favorites' table. The compound unique
// index enforces one document per (user, user type) pair.
type FavoritesModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_type,priority:1"`
	UserType  string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_favorites_user_type,priority:2"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Products []FavoriteProductModel `gorm:"foreignKey:FavoritesID"`
}

// TableName explicitly sets the table name for GORM.
func (FavoritesModel) TableName() string {
	return "favorites"
}

// FavoriteProductModel mirrors the 'favorite_products' table.
type FavoriteProductModel struct {
	FavoritesID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (FavoriteProductModel) TableName() string {
	return "favorite_products"
}
