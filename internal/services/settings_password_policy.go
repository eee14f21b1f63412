package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSettingsPasswordChangeInvalidInput = errors.New("settings password change invalid input")
	ErrSettingsPasswordMismatch           = errors.New("settings password mismatch")
	ErrSettingsInvalidCurrentPassword     = errors.New("settings invalid current password")
	ErrSettingsNewPasswordMustDiffer      = errors.New("settings new password must differ")
)

func (service *SettingsService) ValidatePasswordChange(passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	switch {
	case currentPassword == "" || newPassword == "" || confirmPassword == "":
		return ErrSettingsPasswordChangeInvalidInput
	case newPassword != confirmPassword:
		return ErrSettingsPasswordMismatch
	case bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)) != nil:
		return ErrSettingsInvalidCurrentPassword
	case currentPassword == newPassword:
		return ErrSettingsNewPasswordMustDiffer
	}
	return ValidatePasswordStrength(newPassword)
}
