package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/models"
	"github.com/terraincognita07/gentle75/internal/services"
)

// UpdateTask applies a variant change and/or a completion toggle, then
// answers with the stored task and the recomputed day.
func (handler *Handler) UpdateTask(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	taskID, valid := parseUUIDParam(c, "id")
	if !valid {
		return handler.localizedError(c, fiber.StatusNotFound, "error.task_not_found")
	}

	input := taskUpdateInput{}
	if err := c.BodyParser(&input); err != nil || (input.Completed == nil && input.Variant == nil) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	now := handler.currentTime()
	var (
		task models.Task
		day  models.ChallengeDay
		err  error
	)
	if input.Variant != nil {
		task, err = handler.dayLogService.SetTaskVariant(user.ID, taskID, *input.Variant)
		if err != nil {
			return handler.respondServiceError(c, "update task variant", err)
		}
	}
	if input.Completed != nil {
		task, day, err = handler.dayLogService.SetTaskCompleted(user.ID, taskID, *input.Completed, now)
	} else {
		day, err = handler.dayLogService.RecomputeDayCompletion(user.ID, task.ChallengeDayID, now)
	}
	if err != nil {
		return handler.respondServiceError(c, "update task", err)
	}

	settings, err := handler.settingsService.EnsureUserSettings(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "update task: load settings", err)
	}
	return c.JSON(fiber.Map{
		"task": handler.buildTaskView(c, task),
		"day":  handler.buildDayView(c, day, settings, services.CalendarDate(now, handler.location)),
	})
}
