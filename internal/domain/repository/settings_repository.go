package repository

import (
	"context"

	"workbuddy/internal/domain/entity"

	"github.com/google/uuid"
)

// SettingsRepository defines operations for user settings documents.
type SettingsRepository interface {
	// FindOrCreate returns the settings document for the user, creating
	// one with default preferences when none exists yet.
	FindOrCreate(ctx context.Context, userID uuid.UUID, userType entity.UserType) (*entity.UserSettings, error)

	// Update persists the addresses and preferences of an existing document.
	Update(ctx context.Context, settings *entity.UserSettings) error
}
