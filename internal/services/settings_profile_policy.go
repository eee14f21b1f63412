package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/gentle75/internal/models"
)

var ErrSettingsDisplayNameTooLong = errors.New("settings display name too long")

func (service *SettingsService) NormalizeDisplayName(raw string) (string, error) {
	displayName := strings.TrimSpace(raw)
	if utf8.RuneCountInString(displayName) > models.MaxDisplayNameLength {
		return "", ErrSettingsDisplayNameTooLong
	}
	return displayName, nil
}
