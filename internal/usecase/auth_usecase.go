// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"workbuddy/internal/domain/entity"
)

// AuthUsecase defines the interface for login, registration and
// credential recovery operations.
type AuthUsecase interface {
	// Login authenticates a user. The admin credentials from
	// configuration are checked first, then employees, then clients.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// RegisterClient creates an unverified client account and returns a
	// verification code token; the code itself is mailed to the client.
	RegisterClient(ctx context.Context, input *RegisterClientInput) (*RegisterClientOutput, error)

	// VerifyClient checks the mailed code against the code token and
	// marks the client account as verified.
	VerifyClient(ctx context.Context, input *VerifyCodeInput) error

	// RequestPasswordRecovery mails a recovery code to the account and
	// returns a code token binding it.
	RequestPasswordRecovery(ctx context.Context, email string) (*RecoveryOutput, error)

	// VerifyRecoveryCode checks a recovery code against its token
	// without consuming it.
	VerifyRecoveryCode(ctx context.Context, input *VerifyCodeInput) error

	// ResetPassword verifies the recovery code and replaces the
	// account's password.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}

// --- Input / Output DTOs ---

// LoginInput defines the credentials submitted at login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput carries the session token and the resolved identity.
type LoginOutput struct {
	Token    string          `json:"token"`
	UserID   string          `json:"user_id"`
	UserType entity.UserType `json:"user_type"`
	Name     string          `json:"name"`
}

// RegisterClientInput defines the data required to register a client.
type RegisterClientInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// RegisterClientOutput carries the new account and the code token the
// client must return together with the mailed verification code.
type RegisterClientOutput struct {
	Account   *entity.Account `json:"account"`
	CodeToken string          `json:"-"`
}

// VerifyCodeInput pairs a mailed one-time code with its binding token.
type VerifyCodeInput struct {
	Code      string `json:"code"`
	CodeToken string `json:"-"`
}

// RecoveryOutput carries the code token for a password recovery flow.
type RecoveryOutput struct {
	CodeToken string `json:"-"`
}

// ResetPasswordInput defines the data required to finish a recovery.
type ResetPasswordInput struct {
	Code        string `json:"code"`
	CodeToken   string `json:"-"`
	NewPassword string `json:"new_password"`
}
