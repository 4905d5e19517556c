package settingsstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/VengGaurav/BookReviewAI/internal/database"
	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// SettingsStore exposes the settings table as a plain key-value port, so
// callers (like the session tracker) do not depend on the database layer.
type SettingsStore struct {
	db *database.Database
}

func New(db *database.Database) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the stored value, or an empty string when the key is absent.
func (s *SettingsStore) Get(key string) (string, error) {
	setting, err := s.db.GetSetting(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Set stores a value under the key, overwriting any previous value.
func (s *SettingsStore) Set(key, value string) error {
	return s.db.SetSetting(key, value)
}

// Clear removes the key. Missing keys are not an error.
func (s *SettingsStore) Clear(key string) error {
	return s.db.DeleteSetting(key)
}

// GetTheme returns the persisted UI theme preference, defaulting to "light".
func (s *SettingsStore) GetTheme() string {
	value, err := s.Get(entities.SettingKeyTheme)
	if err != nil || value == "" {
		return "light"
	}
	return value
}

// SetTheme persists the UI theme preference.
func (s *SettingsStore) SetTheme(theme string) error {
	return s.Set(entities.SettingKeyTheme, theme)
}
