package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/services"
)

type errorMapping struct {
	target error
	status int
	key    string
}

var serviceErrorMappings = []errorMapping{
	{services.ErrAuthCredentialsInvalid, fiber.StatusUnauthorized, "error.invalid_credentials"},
	{services.ErrAuthEmailInvalid, fiber.StatusBadRequest, "error.email_invalid"},
	{services.ErrAuthEmailTaken, fiber.StatusConflict, "error.email_taken"},
	{services.ErrAuthPasswordMismatch, fiber.StatusBadRequest, "error.password_mismatch"},
	{services.ErrWeakPassword, fiber.StatusBadRequest, "error.weak_password"},
	{services.ErrSettingsPasswordChangeInvalidInput, fiber.StatusBadRequest, "error.invalid_input"},
	{services.ErrSettingsPasswordMismatch, fiber.StatusBadRequest, "error.password_mismatch"},
	{services.ErrSettingsInvalidCurrentPassword, fiber.StatusUnauthorized, "error.current_password_invalid"},
	{services.ErrSettingsNewPasswordMustDiffer, fiber.StatusBadRequest, "error.new_password_must_differ"},
	{services.ErrSettingsDisplayNameTooLong, fiber.StatusBadRequest, "error.display_name_too_long"},
	{services.ErrSettingsCycleStartDateInvalid, fiber.StatusBadRequest, "error.cycle_start_invalid"},
	{services.ErrDayNotFound, fiber.StatusNotFound, "error.day_not_found"},
	{services.ErrTaskNotFound, fiber.StatusNotFound, "error.task_not_found"},
	{services.ErrDayNotesTooLong, fiber.StatusBadRequest, "error.notes_too_long"},
	{services.ErrDayMoodInvalid, fiber.StatusBadRequest, "error.mood_invalid"},
	{services.ErrDaySymptomInvalid, fiber.StatusBadRequest, "error.symptom_invalid"},
	{services.ErrTaskVariantInvalid, fiber.StatusBadRequest, "error.variant_invalid"},
	{services.ErrTaskVariantUnsupported, fiber.StatusBadRequest, "error.variant_unsupported"},
}

// respondServiceError maps a service sentinel to a localized JSON error.
// Anything unmapped is a store failure: logged and reported generically.
func (handler *Handler) respondServiceError(c *fiber.Ctx, operation string, err error) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return handler.localizedError(c, mapping.status, mapping.key)
		}
	}
	log.Printf("%s: %v", operation, err)
	return handler.localizedError(c, fiber.StatusInternalServerError, "error.internal")
}
