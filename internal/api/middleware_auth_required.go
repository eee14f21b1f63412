package api

import (
	"github.com/gofiber/fiber/v2"
)

// AuthRequired resolves the session cookie into the current user. Accounts
// flagged for a password change may only change the password or log out.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	c.Locals(contextUserKey, user)
	if user.MustChangePassword && !allowedDuringPasswordChange(c.Path()) {
		return handler.localizedError(c, fiber.StatusForbidden, "error.password_change_required")
	}
	return c.Next()
}

func allowedDuringPasswordChange(path string) bool {
	switch path {
	case "/api/settings/change-password", "/api/auth/logout":
		return true
	default:
		return false
	}
}
