package usecase

import (
	"context"
	"time"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountUsecase defines the interface for back-office account
// management across both clients and employees.
type AccountUsecase interface {
	ListAccounts(ctx context.Context, userType entity.UserType) ([]*entity.Account, error)
	GetAccount(ctx context.Context, userType entity.UserType, id uuid.UUID) (*entity.Account, error)
	CreateAccount(ctx context.Context, userType entity.UserType, input *CreateAccountInput) (*entity.Account, error)
	UpdateAccount(ctx context.Context, userType entity.UserType, id uuid.UUID, input *UpdateAccountInput) (*entity.Account, error)
	DeleteAccount(ctx context.Context, userType entity.UserType, id uuid.UUID) error
}

// ProfileUsecase defines the interface for a user's own profile.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userType entity.UserType, id uuid.UUID) (*entity.Account, error)
	UpdateProfile(ctx context.Context, userType entity.UserType, id uuid.UUID, input *UpdateAccountInput) (*entity.Account, error)
}

// --- Input DTOs ---

// CreateAccountInput defines the data required to create an account.
// The profile fields used depend on the target user type.
type CreateAccountInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phone_number"`

	// Client profile fields.
	Address  string     `json:"address,omitempty"`
	Birthday *time.Time `json:"birthday,omitempty"`

	// Employee profile fields.
	HiringDate *time.Time `json:"hiring_date,omitempty"`
	DUI        string     `json:"dui,omitempty"`
	ISSS       string     `json:"isss,omitempty"`
}

// UpdateAccountInput defines the mutable account fields. Nil pointers
// leave the stored value untouched.
type UpdateAccountInput struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`

	Address  *string    `json:"address,omitempty"`
	Birthday *time.Time `json:"birthday,omitempty"`

	HiringDate *time.Time `json:"hiring_date,omitempty"`
	DUI        *string    `json:"dui,omitempty"`
	ISSS       *string    `json:"isss,omitempty"`
}
