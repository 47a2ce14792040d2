package middleware

import (
	"slices"
	"strings"

	"workbuddy/internal/domain/entity"
	"workbuddy/internal/domain/service"

	"github.com/labstack/echo/v4"

	"workbuddy/internal/delivery/http/response"
)

// Context keys set by Authenticate for downstream handlers.
const (
	KeyUserID   = "userID"
	KeyUserType = "userType"

	// SessionCookieName is the cookie the login handler stores the
	// session token in. A Bearer header is accepted as fallback for
	// non-browser clients.
	SessionCookieName = "authToken"
)

// AuthMiddleware provides middleware for session authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the session token and stores the caller's
// identity on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := m.extractToken(c)
		if tokenString == "" {
			return response.Unauthorized(c, "TOKEN_MISSING", "Authentication required")
		}

		claims, err := m.tokenSvc.ValidateSessionToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid or expired session")
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUserType, entity.UserType(claims.UserType))

		return next(c)
	}
}

// RequireUserType restricts a route group to the given user types. It
// must be used after Authenticate.
func (m *AuthMiddleware) RequireUserType(allowed ...entity.UserType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userType, ok := c.Get(KeyUserType).(entity.UserType)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: identity missing")
			}

			if !slices.Contains(allowed, userType) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied for this account type")
			}

			return next(c)
		}
	}
}

// extractToken reads the session cookie, falling back to an
// Authorization Bearer header.
func (m *AuthMiddleware) extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}

	return ""
}
