package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/gentle75/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeDayRepository struct {
	database *gorm.DB
}

func NewChallengeDayRepository(database *gorm.DB) *ChallengeDayRepository {
	return &ChallengeDayRepository{database: database}
}

func (repo *ChallengeDayRepository) ListByUser(userID uint) ([]models.ChallengeDay, error) {
	days := make([]models.ChallengeDay, 0, models.ChallengeLength)
	if err := repo.database.Where("user_id = ?", userID).Order("day_number ASC").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *ChallengeDayRepository) ListByUserNewestFirst(userID uint) ([]models.ChallengeDay, error) {
	days := make([]models.ChallengeDay, 0, models.ChallengeLength)
	if err := repo.database.
		Select("id", "day_number", "date", "is_completed").
		Where("user_id = ?", userID).
		Order("day_number DESC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *ChallengeDayRepository) ListAnchors(userID uint) ([]models.ChallengeDay, error) {
	days := make([]models.ChallengeDay, 0, models.ChallengeLength)
	if err := repo.database.
		Select("day_number", "date").
		Where("user_id = ?", userID).
		Order("day_number ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *ChallengeDayRepository) FindByUserAndNumber(userID uint, dayNumber int) (models.ChallengeDay, bool, error) {
	day := models.ChallengeDay{}
	result := repo.database.Where("user_id = ? AND day_number = ?", userID, dayNumber).Limit(1).Find(&day)
	if result.Error != nil {
		return models.ChallengeDay{}, false, result.Error
	}
	return day, result.RowsAffected > 0, nil
}

func (repo *ChallengeDayRepository) FindByIDForUser(dayID uuid.UUID, userID uint) (models.ChallengeDay, error) {
	day := models.ChallengeDay{}
	if err := repo.database.Where("id = ? AND user_id = ?", dayID, userID).First(&day).Error; err != nil {
		return models.ChallengeDay{}, err
	}
	return day, nil
}

// CreateBatch skips rows that collide with an existing (user_id, day_number).
func (repo *ChallengeDayRepository) CreateBatch(days []models.ChallengeDay) error {
	if len(days) == 0 {
		return nil
	}
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(&days).Error
}

func (repo *ChallengeDayRepository) UpdateLog(dayID uuid.UUID, notes string, mood *string, symptoms []string) error {
	day := models.ChallengeDay{ID: dayID, Notes: notes, Mood: mood, Symptoms: symptoms}
	return repo.database.Model(&day).Select("notes", "mood", "symptoms").Updates(&day).Error
}

func (repo *ChallengeDayRepository) UpdateCompletion(dayID uuid.UUID, completed bool, completedAt *time.Time) error {
	return repo.database.Model(&models.ChallengeDay{}).Where("id = ?", dayID).Updates(map[string]any{
		"is_completed": completed,
		"completed_at": completedAt,
	}).Error
}
