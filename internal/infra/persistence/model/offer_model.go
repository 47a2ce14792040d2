package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferModel mirrors the 'offers' table.
type OfferModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DiscountType string          `gorm:"type:varchar(20);not null"`
	Percentage   float64         `gorm:"not null;default:0"`
	Value        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	FromDate     time.Time       `gorm:"not null"`
	ToDate       time.Time       `gorm:"not null"`
	State        string          `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (OfferModel) TableName() string {
	return "offers"
}
