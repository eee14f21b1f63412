package db

import (
	"github.com/terraincognita07/gentle75/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUserID(userID uint) (models.Profile, bool, error) {
	profile := models.Profile{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.Profile{}, false, result.Error
	}
	return profile, result.RowsAffected > 0, nil
}

// CreateIfMissing inserts the profile unless one already exists for the user.
func (repo *ProfileRepository) CreateIfMissing(profile *models.Profile) error {
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(profile).Error
}

func (repo *ProfileRepository) UpdateFullName(userID uint, fullName string) error {
	return repo.database.Model(&models.Profile{}).Where("user_id = ?", userID).Update("full_name", fullName).Error
}
