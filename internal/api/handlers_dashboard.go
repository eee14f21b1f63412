package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/models"
	"github.com/terraincognita07/gentle75/internal/services"
)

// GetDashboard materializes the challenge lazily, then reports today's day
// with its task set, headline stats and the live PMS status.
func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	now := handler.currentTime()
	today := services.CalendarDate(now, handler.location)

	settings, err := handler.settingsService.EnsureUserSettings(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "dashboard: load settings", err)
	}
	profile, err := handler.settingsService.LoadProfile(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "dashboard: load profile", err)
	}

	handler.challengeSvc.EnsureChallengeDays(user.ID, now, handler.location)
	days, err := handler.challengeSvc.ListDays(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "dashboard: list days", err)
	}

	streak, err := handler.progressService.LoadStreak(user.ID, now, handler.location)
	if err != nil {
		return handler.respondServiceError(c, "dashboard: load streak", err)
	}

	dayNumber := services.CurrentDayNumber(days, today)
	var current *dayView
	tasks := make([]taskView, 0)
	if day, found := services.FindDayByNumber(days, dayNumber); found {
		handler.challengeSvc.EnsureDayWithTasks(user.ID, day, settings)
		stored, err := handler.dayLogService.LoadTasks(day.ID)
		if err != nil {
			return handler.respondServiceError(c, "dashboard: load tasks", err)
		}
		view := handler.buildDayView(c, day, settings, today)
		current = &view
		tasks = handler.taskViews(c, stored)
	}

	return c.JSON(fiber.Map{
		"display_name": profile.FullName,
		"day":          current,
		"tasks":        tasks,
		"stats": fiber.Map{
			"day_number":       dayNumber,
			"total_days":       models.ChallengeLength,
			"progress_percent": float64(dayNumber) / float64(models.ChallengeLength) * 100,
			"streak":           streak,
			"completion_rate":  services.CompletionRate(days, today),
		},
		"timeline": buildTimeline(days, today),
		"pms":      services.CycleStatusFor(today, settings),
	})
}
