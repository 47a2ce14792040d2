package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. The rating aggregate
// columns are recomputed whenever a review is written.
type ProductModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name            string          `gorm:"type:varchar(150);not null"`
	Description     string          `gorm:"type:text"`
	Category        string          `gorm:"type:varchar(100);index"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock           int             `gorm:"not null;default:0"`
	ImageURL        string          `gorm:"type:text"`
	ImageKey        string          `gorm:"type:varchar(255)"`
	AverageRating   float64         `gorm:"not null;default:0"`
	NumberOfReviews int             `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
