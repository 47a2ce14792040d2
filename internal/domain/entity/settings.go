package entity

import (
	"time"

	"github.com/google/uuid"
)

// SettingsAddress is a saved shipping address inside a user's settings.
// At most one address per settings document carries IsDefault.
type SettingsAddress struct {
	ID         uuid.UUID
	Title      string
	Street     string
	City       string
	State      string
	PostalCode string
	IsDefault  bool
}

// NotificationPreferences controls which emails the user receives.
type NotificationPreferences struct {
	Email        bool
	Promotions   bool
	OrderUpdates bool
}

// PrivacyPreferences controls profile data sharing.
type PrivacyPreferences struct {
	ShareProfileData bool
}

// Preferences groups all user-tunable flags.
type Preferences struct {
	Notifications NotificationPreferences
	Privacy       PrivacyPreferences
}

// DefaultPreferences mirrors the defaults applied when a settings
// document is created lazily on first access.
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: NotificationPreferences{
			Email:        true,
			Promotions:   true,
			OrderUpdates: true,
		},
	}
}

// UserSettings is a user's preference document. One per
// (UserID, UserType) pair, created lazily with defaults.
type UserSettings struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	UserType    UserType
	Addresses   []SettingsAddress
	Preferences Preferences
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AddressIndex returns the index of the address with the given id, or -1.
func (s *UserSettings) AddressIndex(id uuid.UUID) int {
	for i := range s.Addresses {
		if s.Addresses[i].ID == id {
			return i
		}
	}

	return -1
}

// SetDefault flags the address with the given id as default, clearing
// the flag everywhere else. It reports whether the address exists.
func (s *UserSettings) SetDefault(id uuid.UUID) bool {
	idx := s.AddressIndex(id)
	if idx < 0 {
		return false
	}
	for i := range s.Addresses {
		s.Addresses[i].IsDefault = i == idx
	}

	return true
}
