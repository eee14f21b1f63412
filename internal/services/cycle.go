package services

import (
	"time"

	"github.com/terraincognita07/gentle75/internal/models"
)

// PMSStatus is the live cycle position shown next to the PMS-Safe settings.
// It is derived on every read and never stored.
type PMSStatus struct {
	Enabled         bool       `json:"enabled"`
	Configured      bool       `json:"configured"`
	InWindow        bool       `json:"in_window"`
	DayInCycle      int        `json:"day_in_cycle"`
	DaysRemaining   int        `json:"days_remaining"`
	DaysUntil       int        `json:"days_until"`
	WindowStart     *time.Time `json:"window_start"`
	WindowEnd       *time.Time `json:"window_end"`
	WaterGoalLiters float64    `json:"water_goal_liters"`
}

func positiveMod(value int, modulus int) int {
	return ((value % modulus) + modulus) % modulus
}

// DayInCycle returns the zero-based position of date inside the cycle that
// started on cycleStart. Dates before cycleStart wrap backwards.
func DayInCycle(date time.Time, cycleStart time.Time, cycleLength int) int {
	if cycleLength <= 0 {
		return 0
	}
	return positiveMod(WholeDaysBetween(date, cycleStart), cycleLength)
}

func PMSStartDay(settings models.UserSettings) int {
	return settings.CycleLength - settings.PMSWindowLength
}

func cycleConfigured(settings models.UserSettings) bool {
	return settings.PMSSafeEnabled && settings.CycleDay1Date != nil && settings.CycleLength > 0
}

func IsInPMSWindow(date time.Time, settings models.UserSettings) bool {
	if !cycleConfigured(settings) {
		return false
	}
	dayInCycle := DayInCycle(date, *settings.CycleDay1Date, settings.CycleLength)
	return dayInCycle >= PMSStartDay(settings)
}

func WaterGoalFor(date time.Time, settings models.UserSettings) float64 {
	if IsInPMSWindow(date, settings) {
		return settings.PMSWaterGoalLiters
	}
	return settings.WaterGoalLiters
}

func CycleStatusFor(date time.Time, settings models.UserSettings) PMSStatus {
	status := PMSStatus{
		Enabled:         settings.PMSSafeEnabled,
		WaterGoalLiters: WaterGoalFor(date, settings),
	}
	if !cycleConfigured(settings) {
		return status
	}

	day := StoredDate(date)
	dayInCycle := DayInCycle(day, *settings.CycleDay1Date, settings.CycleLength)
	pmsStartDay := PMSStartDay(settings)

	status.Configured = true
	status.DayInCycle = dayInCycle + 1

	var windowStart time.Time
	if dayInCycle >= pmsStartDay {
		status.InWindow = true
		status.DaysRemaining = settings.CycleLength - dayInCycle
		windowStart = day.AddDate(0, 0, pmsStartDay-dayInCycle)
	} else {
		status.DaysUntil = pmsStartDay - dayInCycle
		windowStart = day.AddDate(0, 0, status.DaysUntil)
	}
	windowEnd := windowStart.AddDate(0, 0, settings.PMSWindowLength-1)
	status.WindowStart = &windowStart
	status.WindowEnd = &windowEnd
	return status
}
