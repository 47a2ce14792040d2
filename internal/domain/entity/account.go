// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserType tags which collection an account belongs to. The admin is a
// configuration-derived pseudo-account and is never persisted.
type UserType string

const (
	UserTypeClient   UserType = "clients"
	UserTypeEmployee UserType = "employees"
	UserTypeAdmin    UserType = "admin"
)

// Valid reports whether the tag is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeClient, UserTypeEmployee, UserTypeAdmin:
		return true
	}

	return false
}

// Account is the core identity record. Role-specific data lives in the
// optional profiles; an account with an employee profile resolves as an
// employee even when it also carries a client profile, matching the
// employee-first lookup order at login.
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Client       *ClientProfile
	Employee     *EmployeeProfile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClientProfile holds data specific to shop clients.
type ClientProfile struct {
	AccountID uuid.UUID
	Address   string
	Birthday  time.Time
	Verified  bool // email verification flag
	UpdatedAt time.Time
}

// EmployeeProfile holds data specific to staff members.
type EmployeeProfile struct {
	AccountID  uuid.UUID
	HiringDate time.Time
	DUI        string // national identity document
	ISSS       string // social security number
	UpdatedAt  time.Time
}

// UserType resolves the account's collection tag. Employees win over
// clients when both profiles are present.
func (a *Account) UserType() UserType {
	if a.Employee != nil {
		return UserTypeEmployee
	}

	return UserTypeClient
}
