package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscountCodeModel mirrors the 'discount_codes' table.
type DiscountCodeModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code       string    `gorm:"type:varchar(50);not null;unique"`
	Percentage float64   `gorm:"not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Clients []DiscountCodeClientModel `gorm:"foreignKey:DiscountCodeID"`
}

// TableName explicitly sets the table name for GORM.
func (DiscountCodeModel) TableName() string {
	return "discount_codes"
}

// DiscountCodeClientModel mirrors the 'discount_code_clients' table. An
// empty set for a code means every client is eligible.
type DiscountCodeClientModel struct {
	DiscountCodeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (DiscountCodeClientModel) TableName() string {
	return "discount_code_clients"
}
