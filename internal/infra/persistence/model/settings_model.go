package model

import (
	"time"

	"github.com/google/uuid"
)

// UserSettingsModel mirrors the 'user_settings' table. The compound
// unique index enforces one document per (user, user type) pair.
type UserSettingsModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_settings_user_type,priority:1"`
	UserType string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_settings_user_type,priority:2"`

	EmailNotifications bool `gorm:"not null;default:true"`
	Promotions         bool `gorm:"not null;default:true"`
	OrderUpdates       bool `gorm:"not null;default:true"`
	ShareProfileData   bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Addresses []SettingsAddressModel `gorm:"foreignKey:SettingsID"`
}

// TableName explicitly sets the table name for GORM.
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// SettingsAddressModel mirrors the 'settings_addresses' table.
type SettingsAddressModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SettingsID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:varchar(100)"`
	Street     string    `gorm:"type:varchar(150);not null"`
	City       string    `gorm:"type:varchar(100);not null"`
	State      string    `gorm:"type:varchar(100);not null"`
	PostalCode string    `gorm:"type:varchar(20);not null"`
	IsDefault  bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (SettingsAddressModel) TableName() string {
	return "settings_addresses"
}
