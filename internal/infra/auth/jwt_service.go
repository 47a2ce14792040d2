// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"workbuddy/config"
	"workbuddy/internal/domain/service"
)

const (
	defaultSessionTTL = 24 * time.Hour
	defaultCodeTTL    = 15 * time.Minute
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret     string
	sessionTTL time.Duration
	codeTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("jwt session secret must be provided")
	}

	sessionTTL := defaultSessionTTL
	codeTTL := defaultCodeTTL
	if cfg.Auth != nil {
		if cfg.Auth.SessionTTL > 0 {
			sessionTTL = cfg.Auth.SessionTTL
		}
		if cfg.Auth.CodeTTL > 0 {
			codeTTL = cfg.Auth.CodeTTL
		}
	}

	return &jwtService{
		secret:     cfg.SecretKey.Session,
		sessionTTL: sessionTTL,
		codeTTL:    codeTTL,
	}, nil
}

// GenerateSessionToken creates a signed session token for a user.
func (s *jwtService) GenerateSessionToken(userID, userType string) (string, error) {
	now := time.Now()
	claims := &service.SessionClaims{
		UserID:   userID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateSessionToken checks the validity of a session token string.
func (s *jwtService) ValidateSessionToken(tokenString string) (*service.SessionClaims, error) {
	claims := &service.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}

// GenerateCodeToken creates a short-lived token binding a one-time code
// to an email address. A ttl of zero falls back to the configured code TTL.
func (s *jwtService) GenerateCodeToken(email, code string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.codeTTL
	}

	now := time.Now()
	claims := &service.CodeClaims{
		Email: email,
		Code:  code,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateCodeToken checks a code token and returns its claims.
func (s *jwtService) ValidateCodeToken(tokenString string) (*service.CodeClaims, error) {
	claims := &service.CodeClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}

// GetSessionDuration returns the configured session token lifetime.
func (s *jwtService) GetSessionDuration() time.Duration {
	return s.sessionTTL
}

func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	// Ensure the signing method is what we expect.
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}

	return []byte(s.secret), nil
}
