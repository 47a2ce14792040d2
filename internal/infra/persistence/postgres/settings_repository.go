package postgres

import (
	"context"

	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// settingsRepository implements the repository.SettingsRepository interface.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository is the constructor for settingsRepository.
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

// FindOrCreate returns the settings document for the user, creating one
// with default preferences when none exists yet.
func (repo *settingsRepository) FindOrCreate(ctx context.Context, userID uuid.UUID, userType entity.UserType) (*entity.UserSettings, error) {
	var settingsM model.UserSettingsModel

	err := repo.db.WithContext(ctx).
		Preload("Addresses").
		Where("user_id = ? AND user_type = ?", userID, string(userType)).
		First(&settingsM).Error
	if err == nil {
		return toSettingsDomain(&settingsM), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to find settings")
	}

	defaults := entity.DefaultPreferences()
	settingsM = model.UserSettingsModel{
		UserID:             userID,
		UserType:           string(userType),
		EmailNotifications: defaults.Notifications.Email,
		Promotions:         defaults.Notifications.Promotions,
		OrderUpdates:       defaults.Notifications.OrderUpdates,
		ShareProfileData:   defaults.Privacy.ShareProfileData,
	}
	if err := repo.db.WithContext(ctx).Create(&settingsM).Error; err != nil {
		// A concurrent first access may have created the row already.
		if isUniqueConstraintViolation(err) {
			return repo.FindOrCreate(ctx, userID, userType)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create settings")
	}

	return toSettingsDomain(&settingsM), nil
}

// Update persists the addresses and preferences of an existing document.
func (repo *settingsRepository) Update(ctx context.Context, settings *entity.UserSettings) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserSettingsModel{}).
		Where("id = ?", settings.ID).
		Updates(map[string]any{
			"email_notifications": settings.Preferences.Notifications.Email,
			"promotions":          settings.Preferences.Notifications.Promotions,
			"order_updates":       settings.Preferences.Notifications.OrderUpdates,
			"share_profile_data":  settings.Preferences.Privacy.ShareProfileData,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update settings")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound.WrapMessage("settings document missing")
	}

	// Replace the address set wholesale.
	if err := repo.db.WithContext(ctx).
		Where("settings_id = ?", settings.ID).
		Delete(&model.SettingsAddressModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear settings addresses")
	}

	if len(settings.Addresses) > 0 {
		addresses := make([]model.SettingsAddressModel, 0, len(settings.Addresses))
		for _, address := range settings.Addresses {
			addresses = append(addresses, model.SettingsAddressModel{
				ID:         address.ID,
				SettingsID: settings.ID,
				Title:      address.Title,
				Street:     address.Street,
				City:       address.City,
				State:      address.State,
				PostalCode: address.PostalCode,
				IsDefault:  address.IsDefault,
			})
		}
		if err := repo.db.WithContext(ctx).Create(&addresses).Error; err != nil {
			return errors.Wrap(err, "failed to insert settings addresses")
		}
	}

	return nil
}

// --- Mapper Functions ---

// toSettingsDomain converts a GORM UserSettingsModel to a domain UserSettings entity.
func toSettingsDomain(data *model.UserSettingsModel) *entity.UserSettings {
	if data == nil {
		return nil
	}

	addresses := make([]entity.SettingsAddress, 0, len(data.Addresses))
	for _, addressM := range data.Addresses {
		addresses = append(addresses, entity.SettingsAddress{
			ID:         addressM.ID,
			Title:      addressM.Title,
			Street:     addressM.Street,
			City:       addressM.City,
			State:      addressM.State,
			PostalCode: addressM.PostalCode,
			IsDefault:  addressM.IsDefault,
		})
	}

	return &entity.UserSettings{
		ID:       data.ID,
		UserID:   data.UserID,
		UserType: entity.UserType(data.UserType),
		Addresses: addresses,
		Preferences: entity.Preferences{
			Notifications: entity.NotificationPreferences{
				Email:        data.EmailNotifications,
				Promotions:   data.Promotions,
				OrderUpdates: data.OrderUpdates,
			},
			Privacy: entity.PrivacyPreferences{
				ShareProfileData: data.ShareProfileData,
			},
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
