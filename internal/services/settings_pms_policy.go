package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/gentle75/internal/models"
)

var ErrSettingsCycleStartDateInvalid = errors.New("settings cycle start date invalid")

// PMSSettingsInput carries raw form values. Numeric fields are strings so that
// malformed input can fall back instead of failing the request. An empty
// string means the field was not sent.
type PMSSettingsInput struct {
	Enabled            bool
	CycleLengthRaw     string
	WindowLengthRaw    string
	WaterGoalRaw       string
	PMSWaterGoalRaw    string
	CycleDay1DateRaw   string
	CycleDay1DateIsSet bool
}

func ParseIntOrFallback(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}

func ParseFloatOrFallback(raw string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fallback
	}
	return value
}

// A blank field keeps the stored value; a malformed one falls back to the default.
func resolveIntField(raw string, current int, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return current
	}
	return ParseIntOrFallback(raw, fallback)
}

func resolveFloatField(raw string, current float64, fallback float64) float64 {
	if strings.TrimSpace(raw) == "" {
		return current
	}
	return ParseFloatOrFallback(raw, fallback)
}

func clampInt(value int, minValue int, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

func clampFloat(value float64, minValue float64, maxValue float64) float64 {
	return math.Max(minValue, math.Min(maxValue, value))
}

// NormalizePMSSettings clamps every numeric field into its allowed range.
// The window never exceeds the cycle.
func NormalizePMSSettings(settings models.UserSettings) models.UserSettings {
	settings.CycleLength = clampInt(settings.CycleLength, models.MinCycleLength, models.MaxCycleLength)
	settings.PMSWindowLength = clampInt(settings.PMSWindowLength, models.MinPMSWindowLength, models.MaxPMSWindowLength)
	if settings.PMSWindowLength > settings.CycleLength {
		settings.PMSWindowLength = settings.CycleLength
	}
	settings.WaterGoalLiters = clampFloat(settings.WaterGoalLiters, models.MinWaterGoalLiters, models.MaxWaterGoalLiters)
	settings.PMSWaterGoalLiters = clampFloat(settings.PMSWaterGoalLiters, models.MinWaterGoalLiters, models.MaxWaterGoalLiters)
	return settings
}

func (service *SettingsService) ResolvePMSSettings(current models.UserSettings, input PMSSettingsInput, now time.Time, location *time.Location) (models.UserSettings, error) {
	updated := current
	updated.PMSSafeEnabled = input.Enabled
	updated.CycleLength = resolveIntField(input.CycleLengthRaw, current.CycleLength, models.DefaultCycleLength)
	updated.PMSWindowLength = resolveIntField(input.WindowLengthRaw, current.PMSWindowLength, models.DefaultPMSWindowLength)
	updated.WaterGoalLiters = resolveFloatField(input.WaterGoalRaw, current.WaterGoalLiters, models.DefaultWaterGoalLiters)
	updated.PMSWaterGoalLiters = resolveFloatField(input.PMSWaterGoalRaw, current.PMSWaterGoalLiters, models.DefaultPMSWaterGoalLiters)
	updated = NormalizePMSSettings(updated)

	if !input.CycleDay1DateIsSet {
		return updated, nil
	}

	rawDate := strings.TrimSpace(input.CycleDay1DateRaw)
	if rawDate == "" {
		updated.CycleDay1Date = nil
		return updated, nil
	}

	day, err := ParseCalendarDate(rawDate)
	if err != nil {
		return models.UserSettings{}, ErrSettingsCycleStartDateInvalid
	}
	if day.After(CalendarDate(now, location)) {
		return models.UserSettings{}, ErrSettingsCycleStartDateInvalid
	}
	updated.CycleDay1Date = &day
	return updated, nil
}
