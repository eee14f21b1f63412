package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/gentle75/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository struct {
	database *gorm.DB
}

func NewTaskRepository(database *gorm.DB) *TaskRepository {
	return &TaskRepository{database: database}
}

func (repo *TaskRepository) ListByDay(dayID uuid.UUID) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(models.DefaultTaskKinds()))
	if err := repo.database.Where("challenge_day_id = ?", dayID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *TaskRepository) ListKeysByDay(dayID uuid.UUID) ([]string, error) {
	keys := make([]string, 0, len(models.DefaultTaskKinds()))
	if err := repo.database.Model(&models.Task{}).Where("challenge_day_id = ?", dayID).Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (repo *TaskRepository) ListByUser(userID uint) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := repo.database.
		Select("id", "challenge_day_id", "key", "required", "completed").
		Where("user_id = ?", userID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *TaskRepository) FindByIDForUser(taskID uuid.UUID, userID uint) (models.Task, error) {
	task := models.Task{}
	if err := repo.database.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// CreateBatch skips rows that collide with an existing (challenge_day_id, key).
func (repo *TaskRepository) CreateBatch(tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(&tasks).Error
}

func (repo *TaskRepository) UpdateCompleted(taskID uuid.UUID, completed bool) error {
	return repo.database.Model(&models.Task{}).Where("id = ?", taskID).Updates(map[string]any{
		"completed":  completed,
		"updated_at": time.Now().UTC(),
	}).Error
}

func (repo *TaskRepository) UpdateVariant(taskID uuid.UUID, variant *string) error {
	return repo.database.Model(&models.Task{}).Where("id = ?", taskID).Updates(map[string]any{
		"variant":    variant,
		"updated_at": time.Now().UTC(),
	}).Error
}
