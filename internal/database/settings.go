package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// GetSetting retrieves a setting by key.
func (d *Database) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := d.DB.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSetting creates or updates a setting value.
func (d *Database) SetSetting(key, value string) error {
	var setting entities.Setting
	err := d.DB.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.DB.Create(&entities.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	return d.DB.Model(&setting).Update("value", value).Error
}

// DeleteSetting removes a setting. Missing keys are not an error.
func (d *Database) DeleteSetting(key string) error {
	err := d.DB.Where("key = ?", key).Delete(&entities.Setting{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
