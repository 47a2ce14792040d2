package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims defines the custom claims for session JWTs. UserID is a
// string because the admin pseudo-account has no UUID.
type SessionClaims struct {
	UserID   string
	UserType string
	jwt.RegisteredClaims
}

// CodeClaims carries a short-lived one-time code tied to an email, used
// for registration verification and password recovery.
type CodeClaims struct {
	Email string
	Code  string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateSessionToken creates a signed session token for a user.
	GenerateSessionToken(userID, userType string) (string, error)

	// ValidateSessionToken checks the validity of a session token string.
	ValidateSessionToken(tokenString string) (*SessionClaims, error)

	// GenerateCodeToken creates a short-lived token binding a one-time
	// code to an email address.
	GenerateCodeToken(email, code string, ttl time.Duration) (string, error)

	// ValidateCodeToken checks a code token and returns its claims.
	ValidateCodeToken(tokenString string) (*CodeClaims, error)

	// GetSessionDuration returns the configured session token lifetime.
	GetSessionDuration() time.Duration
}
