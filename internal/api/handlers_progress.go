package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/services"
)

type frequencyView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (handler *Handler) GetProgress(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	now := handler.currentTime()

	handler.challengeSvc.EnsureChallengeDays(user.ID, now, handler.location)
	summary, err := handler.progressService.LoadSummary(user.ID, now, handler.location)
	if err != nil {
		return handler.respondServiceError(c, "load progress", err)
	}

	return c.JSON(fiber.Map{
		"summary":  summary,
		"moods":    handler.frequencyViews(c, "mood.", summary.Moods),
		"symptoms": handler.frequencyViews(c, "symptom.", summary.Symptoms),
	})
}

func (handler *Handler) frequencyViews(c *fiber.Ctx, prefix string, items []services.FrequencyItem) []frequencyView {
	views := make([]frequencyView, 0, len(items))
	for _, item := range items {
		views = append(views, frequencyView{
			Key:   item.Key,
			Label: handler.translate(c, prefix+item.Key),
			Count: item.Count,
		})
	}
	return views
}
