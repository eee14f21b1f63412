package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	if err := handler.settingsService.ChangePassword(*user, input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		return handler.respondServiceError(c, "change password", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
