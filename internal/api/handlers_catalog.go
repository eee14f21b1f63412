package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/models"
)

func (handler *Handler) GetCatalog(c *fiber.Ctx) error {
	tasks := make([]catalogItem, 0)
	for _, kind := range models.DefaultTaskKinds() {
		tasks = append(tasks, catalogItem{
			Key:      kind.Key,
			Title:    handler.translate(c, "task."+kind.Key+".title"),
			Detail:   handler.translate(c, "task."+kind.Key+".detail"),
			Required: kind.Required,
			PMSOnly:  kind.PMSOnly,
		})
	}

	return c.JSON(fiber.Map{
		"language":  handler.i18n.NormalizeLanguage(currentLanguage(c)),
		"languages": handler.i18n.SupportedLanguages(),
		"tasks":     tasks,
		"variants":  handler.labelledItems(c, "variant.", models.WorkoutVariants()),
		"moods":     handler.labelledItems(c, "mood.", models.Moods()),
		"symptoms":  handler.labelledItems(c, "symptom.", models.Symptoms()),
	})
}

func (handler *Handler) labelledItems(c *fiber.Ctx, prefix string, keys []string) []catalogItem {
	items := make([]catalogItem, 0, len(keys))
	for _, key := range keys {
		items = append(items, catalogItem{Key: key, Title: handler.translate(c, prefix+key)})
	}
	return items
}
