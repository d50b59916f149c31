package db

import (
	"github.com/terraincognita07/periodcalendar/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// Load returns the stored settings row, or the defaults when it is missing.
func (repo *SettingsRepository) Load() (models.UserSettings, error) {
	settings := models.UserSettings{}
	result := repo.database.Where("id = ?", models.SettingsRowID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.UserSettings{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DefaultUserSettings(), nil
	}
	return settings, nil
}

func (repo *SettingsRepository) Save(settings *models.UserSettings) error {
	settings.ID = models.SettingsRowID
	return repo.database.Save(settings).Error
}
