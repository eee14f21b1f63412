package db

import (
	"time"

	"github.com/terraincognita07/gentle75/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

func (repo *SettingsRepository) FindByUserID(userID uint) (models.UserSettings, bool, error) {
	settings := models.UserSettings{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.UserSettings{}, false, result.Error
	}
	return settings, result.RowsAffected > 0, nil
}

func (repo *SettingsRepository) CreateIfMissing(settings *models.UserSettings) error {
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(settings).Error
}

func (repo *SettingsRepository) UpdatePMSSettings(settings models.UserSettings) error {
	return repo.database.Model(&models.UserSettings{}).Where("user_id = ?", settings.UserID).Updates(map[string]any{
		"pms_safe_enabled":      settings.PMSSafeEnabled,
		"cycle_length":          settings.CycleLength,
		"pms_window_length":     settings.PMSWindowLength,
		"cycle_day1_date":       settings.CycleDay1Date,
		"water_goal_liters":     settings.WaterGoalLiters,
		"pms_water_goal_liters": settings.PMSWaterGoalLiters,
		"updated_at":            time.Now().UTC(),
	}).Error
}
