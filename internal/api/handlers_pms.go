package api

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/models"
	"github.com/terraincognita07/gentle75/internal/services"
)

func (handler *Handler) GetPMS(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	settings, err := handler.settingsService.EnsureUserSettings(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "load pms settings", err)
	}
	return handler.pmsResponse(c, settings)
}

// UpdatePMS saves the cycle settings. Existing task sets keep the PMS
// membership they were created with.
func (handler *Handler) UpdatePMS(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := pmsSettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	cycleStart := ""
	if input.CycleDay1Date != nil {
		cycleStart = *input.CycleDay1Date
	}
	settings, err := handler.settingsService.SavePMSSettings(user.ID, services.PMSSettingsInput{
		Enabled:            input.Enabled,
		CycleLengthRaw:     rawNumber(input.CycleLength),
		WindowLengthRaw:    rawNumber(input.PMSWindowLength),
		WaterGoalRaw:       rawNumber(input.WaterGoalLiters),
		PMSWaterGoalRaw:    rawNumber(input.PMSWaterGoalLiters),
		CycleDay1DateRaw:   cycleStart,
		CycleDay1DateIsSet: input.CycleDay1Date != nil,
	}, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "save pms settings", err)
	}
	return handler.pmsResponse(c, settings)
}

func (handler *Handler) pmsResponse(c *fiber.Ctx, settings models.UserSettings) error {
	today := services.CalendarDate(handler.currentTime(), handler.location)

	var cycleStart *string
	if settings.CycleDay1Date != nil {
		formatted := services.FormatCalendarDate(*settings.CycleDay1Date)
		cycleStart = &formatted
	}
	return c.JSON(fiber.Map{
		"settings": fiber.Map{
			"pms_safe_enabled":      settings.PMSSafeEnabled,
			"cycle_length":          settings.CycleLength,
			"pms_window_length":     settings.PMSWindowLength,
			"cycle_day1_date":       cycleStart,
			"water_goal_liters":     settings.WaterGoalLiters,
			"pms_water_goal_liters": settings.PMSWaterGoalLiters,
		},
		"status": services.CycleStatusFor(today, settings),
	})
}

// rawNumber accepts both JSON numbers and numeric strings.
func rawNumber(value json.RawMessage) string {
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		return text
	}
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}
