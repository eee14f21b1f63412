package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	profile, err := handler.settingsService.LoadProfile(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "load profile", err)
	}
	return c.JSON(fiber.Map{
		"email":     user.Email,
		"full_name": profile.FullName,
	})
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	profile, err := handler.settingsService.UpdateDisplayName(user.ID, input.FullName)
	if err != nil {
		return handler.respondServiceError(c, "update profile", err)
	}
	return c.JSON(fiber.Map{
		"email":     user.Email,
		"full_name": profile.FullName,
	})
}
