package models

import "time"

const (
	DefaultCycleLength        = 28
	DefaultPMSWindowLength    = 7
	DefaultWaterGoalLiters    = 3.8
	DefaultPMSWaterGoalLiters = 3.0

	MinCycleLength     = 21
	MaxCycleLength     = 40
	MinPMSWindowLength = 3
	MaxPMSWindowLength = 14
	MinWaterGoalLiters = 0.5
	MaxWaterGoalLiters = 10.0
)

type UserSettings struct {
	UserID             uint       `gorm:"primaryKey" json:"user_id"`
	PMSSafeEnabled     bool       `gorm:"column:pms_safe_enabled;not null;default:false" json:"pms_safe_enabled"`
	CycleLength        int        `gorm:"not null;default:28" json:"cycle_length"`
	PMSWindowLength    int        `gorm:"column:pms_window_length;not null;default:7" json:"pms_window_length"`
	CycleDay1Date      *time.Time `gorm:"column:cycle_day1_date;type:date" json:"cycle_day1_date"`
	WaterGoalLiters    float64    `gorm:"not null;default:3.8" json:"water_goal_liters"`
	PMSWaterGoalLiters float64    `gorm:"column:pms_water_goal_liters;not null;default:3" json:"pms_water_goal_liters"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

func DefaultUserSettings(userID uint) UserSettings {
	return UserSettings{
		UserID:             userID,
		PMSSafeEnabled:     false,
		CycleLength:        DefaultCycleLength,
		PMSWindowLength:    DefaultPMSWindowLength,
		WaterGoalLiters:    DefaultWaterGoalLiters,
		PMSWaterGoalLiters: DefaultPMSWaterGoalLiters,
	}
}
