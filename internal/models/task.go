package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TaskWorkout1     = "workout1"
	TaskWorkout2     = "workout2"
	TaskWater        = "water"
	TaskRead         = "read"
	TaskDiet         = "diet"
	TaskPhoto        = "photo"
	TaskRestRecovery = "rest_recovery"
)

const (
	VariantNormal = "normal"
	VariantWalk   = "walk"
	VariantYoga   = "yoga"
)

type Task struct {
	ID             uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	ChallengeDayID uuid.UUID `gorm:"type:text;not null;uniqueIndex:uidx_tasks_day_key" json:"challenge_day_id"`
	Key            string    `gorm:"not null;uniqueIndex:uidx_tasks_day_key" json:"key"`
	Title          string    `gorm:"not null" json:"title"`
	Required       bool      `gorm:"not null" json:"required"`
	Completed      bool      `gorm:"not null;default:false" json:"completed"`
	Variant        *string   `json:"variant"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (task *Task) BeforeCreate(tx *gorm.DB) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	return nil
}

// TaskKind is one entry of the static daily task catalog.
type TaskKind struct {
	Key      string
	Title    string
	Required bool
	PMSOnly  bool
}

func DefaultTaskKinds() []TaskKind {
	return []TaskKind{
		{Key: TaskWorkout1, Title: "Workout 1 (45 min)", Required: true},
		{Key: TaskWorkout2, Title: "Workout 2 (45 min)", Required: true},
		{Key: TaskWater, Title: "Drink water (1 gallon)", Required: true},
		{Key: TaskRead, Title: "Read 10 pages", Required: true},
		{Key: TaskDiet, Title: "Follow diet", Required: true},
		{Key: TaskPhoto, Title: "Progress photo", Required: true},
		{Key: TaskRestRecovery, Title: "Rest & Recovery", Required: false, PMSOnly: true},
	}
}

func FindTaskKind(key string) (TaskKind, bool) {
	for _, kind := range DefaultTaskKinds() {
		if kind.Key == key {
			return kind, true
		}
	}
	return TaskKind{}, false
}

func WorkoutVariants() []string {
	return []string{VariantNormal, VariantWalk, VariantYoga}
}

func IsKnownWorkoutVariant(value string) bool {
	for _, variant := range WorkoutVariants() {
		if variant == value {
			return true
		}
	}
	return false
}
