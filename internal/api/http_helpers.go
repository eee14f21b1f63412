package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/terraincognita07/gentle75/internal/models"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) localizedError(c *fiber.Ctx, status int, key string) error {
	return apiError(c, status, handler.translate(c, key))
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(currentLanguage(c), key)
}

// parseDayNumber reports ok=false for anything that is not an integer in 1..75.
func parseDayNumber(raw string) (int, bool) {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || number < 1 || number > models.ChallengeLength {
		return 0, false
	}
	return number, true
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func requireUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := currentUser(c)
	return user, ok && user != nil
}
