package impl

import (
	"context"
	"log/slog"

	deliverycontext "workbuddy/internal/delivery/context"
	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// settingsService implements the SettingsUsecase interface.
type settingsService struct {
	settingsRepo repository.SettingsRepository
	logger       *slog.Logger
}

// SettingsServiceParams holds dependencies for settingsService, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	SettingsRepo repository.SettingsRepository
	Logger       *slog.Logger
}

// NewSettingsService is the constructor for settingsService.
func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		settingsRepo: params.SettingsRepo,
		logger:       params.Logger,
	}
}

func (srv *settingsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetSettings returns the user's settings document, creating one with
// default preferences on first access.
func (srv *settingsService) GetSettings(ctx context.Context, userID uuid.UUID, userType entity.UserType) (*entity.UserSettings, error) {
	settings, err := srv.settingsRepo.FindOrCreate(ctx, userID, userType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load settings")
	}

	return settings, nil
}

// UpdatePreferences applies the non-nil preference flags.
func (srv *settingsService) UpdatePreferences(ctx context.Context, userID uuid.UUID, userType entity.UserType, input *usecase.PreferencesInput) (*entity.UserSettings, error) {
	settings, err := srv.GetSettings(ctx, userID, userType)
	if err != nil {
		return nil, err
	}

	if input.EmailNotifications != nil {
		settings.Preferences.Notifications.Email = *input.EmailNotifications
	}
	if input.Promotions != nil {
		settings.Preferences.Notifications.Promotions = *input.Promotions
	}
	if input.OrderUpdates != nil {
		settings.Preferences.Notifications.OrderUpdates = *input.OrderUpdates
	}
	if input.ShareProfileData != nil {
		settings.Preferences.Privacy.ShareProfileData = *input.ShareProfileData
	}

	return srv.persist(ctx, settings)
}

// AddAddress appends a shipping address. A new default clears the flag
// on every other address.
func (srv *settingsService) AddAddress(ctx context.Context, userID uuid.UUID, userType entity.UserType, input *usecase.AddressInput) (*entity.UserSettings, error) {
	settings, err := srv.GetSettings(ctx, userID, userType)
	if err != nil {
		return nil, err
	}

	address := addressFromInput(input)
	address.ID = uuid.New()

	if address.IsDefault {
		for i := range settings.Addresses {
			settings.Addresses[i].IsDefault = false
		}
	}
	settings.Addresses = append(settings.Addresses, address)

	return srv.persist(ctx, settings)
}

// UpdateAddress replaces the fields of a saved address.
func (srv *settingsService) UpdateAddress(ctx context.Context, userID uuid.UUID, userType entity.UserType, addressID uuid.UUID, input *usecase.AddressInput) (*entity.UserSettings, error) {
	settings, err := srv.GetSettings(ctx, userID, userType)
	if err != nil {
		return nil, err
	}

	idx := settings.AddressIndex(addressID)
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrAddressNotFound, "address update failed")
	}

	address := addressFromInput(input)
	address.ID = addressID

	if address.IsDefault {
		for i := range settings.Addresses {
			settings.Addresses[i].IsDefault = false
		}
	}
	settings.Addresses[idx] = address

	return srv.persist(ctx, settings)
}

// DeleteAddress removes a saved address.
func (srv *settingsService) DeleteAddress(ctx context.Context, userID uuid.UUID, userType entity.UserType, addressID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := srv.GetSettings(ctx, userID, userType)
	if err != nil {
		return nil, err
	}

	idx := settings.AddressIndex(addressID)
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrAddressNotFound, "address delete failed")
	}

	settings.Addresses = append(settings.Addresses[:idx], settings.Addresses[idx+1:]...)

	return srv.persist(ctx, settings)
}

// SetDefaultAddress flags one saved address as the default.
func (srv *settingsService) SetDefaultAddress(ctx context.Context, userID uuid.UUID, userType entity.UserType, addressID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := srv.GetSettings(ctx, userID, userType)
	if err != nil {
		return nil, err
	}

	if !settings.SetDefault(addressID) {
		return nil, errors.Wrap(domainerrors.ErrAddressNotFound, "default address change failed")
	}

	return srv.persist(ctx, settings)
}

func (srv *settingsService) persist(ctx context.Context, settings *entity.UserSettings) (*entity.UserSettings, error) {
	if err := srv.settingsRepo.Update(ctx, settings); err != nil {
		return nil, errors.Wrap(err, "failed to persist settings")
	}

	srv.log(ctx).Debug("Settings updated", slog.Any("userID", settings.UserID))

	return settings, nil
}

func addressFromInput(input *usecase.AddressInput) entity.SettingsAddress {
	return entity.SettingsAddress{
		Title:      input.Title,
		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		IsDefault:  input.IsDefault,
	}
}
