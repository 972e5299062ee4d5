package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack/internal/currency"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// settingsService stores user preferences.
type settingsService struct {
	db             *gorm.DB
	table          *currency.Table
	defaultDisplay string
}

// NewSettingsService creates a new SettingsServicer. defaultDisplay is used
// until the user picks a display currency; an unknown code falls back to the
// table's base currency.
func NewSettingsService(db *gorm.DB, table *currency.Table, defaultDisplay string) SettingsServicer {
	if !table.Known(defaultDisplay) {
		defaultDisplay = table.Base().Code
	}
	return &settingsService{db: db, table: table, defaultDisplay: defaultDisplay}
}

// GetDisplayCurrency returns the stored display currency or the default.
func (s *settingsService) GetDisplayCurrency() (string, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", models.SettingDisplayCurrency).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultDisplay, nil
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !s.table.Known(setting.Value) {
		return s.defaultDisplay, nil
	}
	return setting.Value, nil
}

// SetDisplayCurrency validates and stores the display currency.
func (s *settingsService) SetDisplayCurrency(code string) (string, error) {
	code, err := resolveCurrency(s.table, code)
	if err != nil {
		return "", err
	}

	setting := models.Setting{Key: models.SettingDisplayCurrency, Value: code}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return code, nil
}
