// Package handler contains the HTTP handlers for the application.
package handler

import (
	"workbuddy/internal/delivery/http/middleware"
	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated caller's ID as set by the
// auth middleware. The admin pseudo-account has the literal ID "admin".
func currentUserID(c echo.Context) (string, bool) {
	id, ok := c.Get(middleware.KeyUserID).(string)

	return id, ok && id != ""
}

// currentUserUUID parses the caller's ID as a UUID. It fails for the
// admin pseudo-account, which owns no database rows.
func currentUserUUID(c echo.Context) (uuid.UUID, bool) {
	id, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, false
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}

	return parsed, true
}

// currentUserType returns the authenticated caller's account type.
func currentUserType(c echo.Context) (entity.UserType, bool) {
	userType, ok := c.Get(middleware.KeyUserType).(entity.UserType)

	return userType, ok
}

// pathUUID parses the named path parameter as a UUID.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}
