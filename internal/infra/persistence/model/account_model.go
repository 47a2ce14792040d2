package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// Email is unique per user type so a person can hold both a client and an
// employee account under the same address.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserType     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_email_type,priority:2"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_email_type,priority:1"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PhoneNumber  string    `gorm:"type:varchar(30)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ClientProfile   *ClientProfileModel   `gorm:"foreignKey:AccountID"`
	EmployeeProfile *EmployeeProfileModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// ClientProfileModel mirrors the 'client_profiles' table. AccountID references accounts.id (UUID).
type ClientProfileModel struct {
	AccountID uuid.UUID `gorm:"primaryKey"`
	Address   string    `gorm:"type:text"`
	Birthday  time.Time
	Verified  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ClientProfileModel) TableName() string {
	return "client_profiles"
}

// EmployeeProfileModel mirrors the 'employee_profiles' table. AccountID references accounts.id (UUID).
type EmployeeProfileModel struct {
	AccountID  uuid.UUID `gorm:"primaryKey"`
	HiringDate time.Time
	DUI        string `gorm:"type:varchar(20)"`
	ISSS       string `gorm:"type:varchar(20)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (EmployeeProfileModel) TableName() string {
	return "employee_profiles"
}
