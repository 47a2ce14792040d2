// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// ErrDuplicateEmail is returned when an insert or update violates the
// unique email constraint.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address,
	// restricted to the given user type.
	FindByEmail(ctx context.Context, email string, userType entity.UserType) (*entity.Account, error)

	// List returns every account of the given user type.
	List(ctx context.Context, userType entity.UserType) ([]*entity.Account, error)

	// Create persists a new account with its type-specific profile.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account and its profile.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes the account and its profile.
	Delete(ctx context.Context, id uuid.UUID) error
}
