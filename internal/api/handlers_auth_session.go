package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	user, err := handler.authService.Register(services.RegisterInput{
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
		FullName:        input.FullName,
	}, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "register", err)
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return handler.respondServiceError(c, "register: create session", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "user": user})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := handler.currentTime()
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.blocked(limiterKey, now, loginAttemptsLimit, loginAttemptsWindow) {
		return handler.localizedError(c, fiber.StatusTooManyRequests, "error.too_many_attempts")
	}

	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		handler.loginLimiter.recordFailure(limiterKey, now, loginAttemptsWindow)
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.recordFailure(limiterKey, now, loginAttemptsWindow)
		}
		return handler.respondServiceError(c, "login", err)
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return handler.respondServiceError(c, "login: create session", err)
	}
	return c.JSON(fiber.Map{
		"ok":                   true,
		"user":                 user,
		"must_change_password": user.MustChangePassword,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
