package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/models"
	"github.com/terraincognita07/gentle75/internal/services"
)

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	now := handler.currentTime()
	today := services.CalendarDate(now, handler.location)

	settings, err := handler.settingsService.EnsureUserSettings(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "list days: load settings", err)
	}
	handler.challengeSvc.EnsureChallengeDays(user.ID, now, handler.location)
	days, err := handler.challengeSvc.ListDays(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "list days", err)
	}

	views := make([]dayView, 0, len(days))
	for _, day := range days {
		views = append(views, handler.buildDayView(c, day, settings, today))
	}
	return c.JSON(fiber.Map{"days": views})
}

// GetDay answers with an empty state for day numbers that do not exist.
// Tasks of an existing day are materialized on read.
func (handler *Handler) GetDay(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	dayNumber, valid := parseDayNumber(c.Params("number"))
	if !valid {
		return emptyDayResponse(c)
	}
	now := handler.currentTime()

	settings, err := handler.settingsService.EnsureUserSettings(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "get day: load settings", err)
	}
	handler.challengeSvc.EnsureChallengeDays(user.ID, now, handler.location)

	day, found, err := handler.dayLogService.LoadDay(user.ID, dayNumber)
	if err != nil {
		return handler.respondServiceError(c, "get day", err)
	}
	if !found {
		return emptyDayResponse(c)
	}

	handler.challengeSvc.EnsureDayWithTasks(user.ID, day, settings)
	tasks, err := handler.dayLogService.LoadTasks(day.ID)
	if err != nil {
		return handler.respondServiceError(c, "get day: load tasks", err)
	}

	view := handler.buildDayView(c, day, settings, services.CalendarDate(now, handler.location))
	return c.JSON(fiber.Map{
		"day":   view,
		"tasks": handler.taskViews(c, tasks),
	})
}

func (handler *Handler) UpdateDayLog(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	dayNumber, valid := parseDayNumber(c.Params("number"))
	if !valid {
		return handler.localizedError(c, fiber.StatusNotFound, "error.day_not_found")
	}

	input := dayLogInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	day, err := handler.dayLogService.UpdateDayLog(user.ID, dayNumber, services.DayLogInput{
		Notes:    input.Notes,
		Mood:     input.Mood,
		Symptoms: input.Symptoms,
	})
	if err != nil {
		return handler.respondServiceError(c, "update day log", err)
	}

	settings, err := handler.settingsService.EnsureUserSettings(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "update day log: load settings", err)
	}
	today := services.CalendarDate(handler.currentTime(), handler.location)
	return c.JSON(fiber.Map{"day": handler.buildDayView(c, day, settings, today)})
}

func emptyDayResponse(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"day":   nil,
		"tasks": []models.Task{},
	})
}
