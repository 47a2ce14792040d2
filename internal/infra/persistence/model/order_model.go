package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. The shipping address is an
// immutable snapshot taken at order creation.
type OrderModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CartID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserType string    `gorm:"type:varchar(20);not null"`

	ShippingStreet     string `gorm:"type:varchar(150);not null"`
	ShippingCity       string `gorm:"type:varchar(100);not null"`
	ShippingState      string `gorm:"type:varchar(100);not null"`
	ShippingPostalCode string `gorm:"type:varchar(20);not null"`

	PaymentMethod        string `gorm:"type:varchar(30)"`
	PaymentStatus        string `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentTransactionID string `gorm:"type:varchar(100);index"`
	PaymentDate          *time.Time

	Status           string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NotificationSent bool            `gorm:"not null;default:false"`
	CreatedAt        time.Time       `gorm:"index"`
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
