package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/terraincognita07/gentle75/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDayNotFound            = errors.New("challenge day not found")
	ErrDayLoadFailed          = errors.New("challenge day load failed")
	ErrDayUpdateFailed        = errors.New("challenge day update failed")
	ErrDayNotesTooLong        = errors.New("day notes too long")
	ErrDayMoodInvalid         = errors.New("day mood invalid")
	ErrDaySymptomInvalid      = errors.New("day symptom invalid")
	ErrTaskNotFound           = errors.New("task not found")
	ErrTaskLoadFailed         = errors.New("task load failed")
	ErrTaskUpdateFailed       = errors.New("task update failed")
	ErrTaskVariantInvalid     = errors.New("task variant invalid")
	ErrTaskVariantUnsupported = errors.New("task does not support variants")
)

type DayLogDayRepository interface {
	FindByUserAndNumber(userID uint, dayNumber int) (models.ChallengeDay, bool, error)
	FindByIDForUser(dayID uuid.UUID, userID uint) (models.ChallengeDay, error)
	UpdateLog(dayID uuid.UUID, notes string, mood *string, symptoms []string) error
	UpdateCompletion(dayID uuid.UUID, completed bool, completedAt *time.Time) error
}

type DayLogTaskRepository interface {
	ListByDay(dayID uuid.UUID) ([]models.Task, error)
	FindByIDForUser(taskID uuid.UUID, userID uint) (models.Task, error)
	UpdateCompleted(taskID uuid.UUID, completed bool) error
	UpdateVariant(taskID uuid.UUID, variant *string) error
}

type DayLogInput struct {
	Notes    string
	Mood     string
	Symptoms []string
}

type DayLogService struct {
	days  DayLogDayRepository
	tasks DayLogTaskRepository
}

func NewDayLogService(days DayLogDayRepository, tasks DayLogTaskRepository) *DayLogService {
	return &DayLogService{days: days, tasks: tasks}
}

func NormalizeDayLogInput(input DayLogInput) (string, *string, []string, error) {
	notes := strings.TrimSpace(input.Notes)
	if utf8.RuneCountInString(notes) > models.MaxDayNotesRunes {
		return "", nil, nil, ErrDayNotesTooLong
	}

	var mood *string
	if rawMood := strings.TrimSpace(input.Mood); rawMood != "" {
		canonical, ok := canonicalCatalogValue(models.Moods(), rawMood)
		if !ok {
			return "", nil, nil, ErrDayMoodInvalid
		}
		mood = &canonical
	}

	symptoms := make([]string, 0, len(input.Symptoms))
	seen := make(map[string]struct{}, len(input.Symptoms))
	for _, raw := range input.Symptoms {
		symptom, ok := canonicalCatalogValue(models.Symptoms(), strings.TrimSpace(raw))
		if !ok {
			return "", nil, nil, ErrDaySymptomInvalid
		}
		if _, duplicate := seen[symptom]; duplicate {
			continue
		}
		seen[symptom] = struct{}{}
		symptoms = append(symptoms, symptom)
	}
	return notes, mood, symptoms, nil
}

func canonicalCatalogValue(catalog []string, raw string) (string, bool) {
	for _, value := range catalog {
		if strings.EqualFold(value, raw) {
			return value, true
		}
	}
	return "", false
}

// IsDayComplete reports whether every required task is done. A day without
// materialized required tasks is never complete.
func IsDayComplete(tasks []models.Task) bool {
	required := 0
	for _, task := range tasks {
		if !task.Required {
			continue
		}
		required++
		if !task.Completed {
			return false
		}
	}
	return required > 0
}

func SortTasksByCatalog(tasks []models.Task) {
	position := make(map[string]int)
	for index, kind := range models.DefaultTaskKinds() {
		position[kind.Key] = index
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return position[tasks[i].Key] < position[tasks[j].Key]
	})
}

func (service *DayLogService) LoadDay(userID uint, dayNumber int) (models.ChallengeDay, bool, error) {
	if dayNumber < 1 || dayNumber > models.ChallengeLength {
		return models.ChallengeDay{}, false, nil
	}
	day, found, err := service.days.FindByUserAndNumber(userID, dayNumber)
	if err != nil {
		return models.ChallengeDay{}, false, fmt.Errorf("%w: %v", ErrDayLoadFailed, err)
	}
	return day, found, nil
}

func (service *DayLogService) LoadTasks(dayID uuid.UUID) ([]models.Task, error) {
	tasks, err := service.tasks.ListByDay(dayID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTaskLoadFailed, err)
	}
	SortTasksByCatalog(tasks)
	return tasks, nil
}

func (service *DayLogService) UpdateDayLog(userID uint, dayNumber int, input DayLogInput) (models.ChallengeDay, error) {
	notes, mood, symptoms, err := NormalizeDayLogInput(input)
	if err != nil {
		return models.ChallengeDay{}, err
	}

	day, found, err := service.LoadDay(userID, dayNumber)
	if err != nil {
		return models.ChallengeDay{}, err
	}
	if !found {
		return models.ChallengeDay{}, ErrDayNotFound
	}

	if err := service.days.UpdateLog(day.ID, notes, mood, symptoms); err != nil {
		return models.ChallengeDay{}, fmt.Errorf("%w: %v", ErrDayUpdateFailed, err)
	}
	return service.reloadDay(day.ID, userID)
}

func (service *DayLogService) loadTask(userID uint, taskID uuid.UUID) (models.Task, error) {
	task, err := service.tasks.FindByIDForUser(taskID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrTaskLoadFailed, err)
	}
	return task, nil
}

func (service *DayLogService) reloadDay(dayID uuid.UUID, userID uint) (models.ChallengeDay, error) {
	day, err := service.days.FindByIDForUser(dayID, userID)
	if err != nil {
		return models.ChallengeDay{}, fmt.Errorf("%w: %v", ErrDayLoadFailed, err)
	}
	return day, nil
}

func (service *DayLogService) reloadTask(taskID uuid.UUID, userID uint) (models.Task, error) {
	task, err := service.tasks.FindByIDForUser(taskID, userID)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrTaskLoadFailed, err)
	}
	return task, nil
}

// SetTaskCompleted stores the task flag and then recomputes the owning day.
func (service *DayLogService) SetTaskCompleted(userID uint, taskID uuid.UUID, completed bool, now time.Time) (models.Task, models.ChallengeDay, error) {
	task, err := service.loadTask(userID, taskID)
	if err != nil {
		return models.Task{}, models.ChallengeDay{}, err
	}
	if err := service.tasks.UpdateCompleted(task.ID, completed); err != nil {
		return models.Task{}, models.ChallengeDay{}, fmt.Errorf("%w: %v", ErrTaskUpdateFailed, err)
	}

	day, err := service.RecomputeDayCompletion(userID, task.ChallengeDayID, now)
	if err != nil {
		return models.Task{}, models.ChallengeDay{}, err
	}
	stored, err := service.reloadTask(task.ID, userID)
	if err != nil {
		return models.Task{}, models.ChallengeDay{}, err
	}
	return stored, day, nil
}

func (service *DayLogService) SetTaskVariant(userID uint, taskID uuid.UUID, rawVariant string) (models.Task, error) {
	task, err := service.loadTask(userID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if task.Key != models.TaskWorkout2 {
		return models.Task{}, ErrTaskVariantUnsupported
	}

	variant := strings.ToLower(strings.TrimSpace(rawVariant))
	if !models.IsKnownWorkoutVariant(variant) {
		return models.Task{}, ErrTaskVariantInvalid
	}
	var stored *string
	if variant != models.VariantNormal {
		stored = &variant
	}
	if err := service.tasks.UpdateVariant(task.ID, stored); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrTaskUpdateFailed, err)
	}
	return service.reloadTask(task.ID, userID)
}

func (service *DayLogService) RecomputeDayCompletion(userID uint, dayID uuid.UUID, now time.Time) (models.ChallengeDay, error) {
	day, err := service.reloadDay(dayID, userID)
	if err != nil {
		return models.ChallengeDay{}, err
	}
	tasks, err := service.LoadTasks(dayID)
	if err != nil {
		return models.ChallengeDay{}, err
	}

	completed := IsDayComplete(tasks)
	if completed == day.IsCompleted {
		return day, nil
	}

	var completedAt *time.Time
	if completed {
		stamp := now.UTC()
		completedAt = &stamp
	}
	if err := service.days.UpdateCompletion(day.ID, completed, completedAt); err != nil {
		return models.ChallengeDay{}, fmt.Errorf("%w: %v", ErrDayUpdateFailed, err)
	}
	return service.reloadDay(day.ID, userID)
}
