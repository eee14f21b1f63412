package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const ChallengeLength = 75

const (
	MoodEnergetic = "Energetic"
	MoodOkay      = "Okay"
	MoodLow       = "Low"
	MoodAnxious   = "Anxious"
)

const (
	SymptomCramps    = "cramps"
	SymptomHeadache  = "headache"
	SymptomCravings  = "cravings"
	SymptomFatigue   = "fatigue"
	SymptomBloating  = "bloating"
	MaxDayNotesRunes = 4000
)

type ChallengeDay struct {
	ID          uuid.UUID                   `gorm:"type:text;primaryKey" json:"id"`
	UserID      uint                        `gorm:"not null;uniqueIndex:uidx_challenge_days_user_day" json:"user_id"`
	DayNumber   int                         `gorm:"not null;uniqueIndex:uidx_challenge_days_user_day" json:"day_number"`
	Date        time.Time                   `gorm:"type:date;not null" json:"date"`
	Notes       string                      `gorm:"not null;default:''" json:"notes"`
	Mood        *string                     `json:"mood"`
	Symptoms    datatypes.JSONSlice[string] `json:"symptoms"`
	IsCompleted bool                        `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt *time.Time                  `json:"completed_at"`
	CreatedAt   time.Time                   `json:"created_at"`
}

func (day *ChallengeDay) BeforeCreate(tx *gorm.DB) error {
	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}
	if day.Symptoms == nil {
		day.Symptoms = datatypes.JSONSlice[string]{}
	}
	return nil
}

func Moods() []string {
	return []string{MoodEnergetic, MoodOkay, MoodLow, MoodAnxious}
}

func Symptoms() []string {
	return []string{SymptomCramps, SymptomHeadache, SymptomCravings, SymptomFatigue, SymptomBloating}
}
