package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/gentle75/internal/models"
)

var (
	ErrSettingsLoadFailed    = errors.New("settings load failed")
	ErrSettingsSaveFailed    = errors.New("settings save failed")
	ErrProfileLoadFailed     = errors.New("profile load failed")
	ErrProfileSaveFailed     = errors.New("profile save failed")
	ErrPasswordUpdateFailed  = errors.New("password update failed")
	ErrPasswordHashingFailed = errors.New("password hashing failed")
)

type UserSettingsRepository interface {
	FindByUserID(userID uint) (models.UserSettings, bool, error)
	CreateIfMissing(settings *models.UserSettings) error
	UpdatePMSSettings(settings models.UserSettings) error
}

type ProfileRepository interface {
	FindByUserID(userID uint) (models.Profile, bool, error)
	CreateIfMissing(profile *models.Profile) error
	UpdateFullName(userID uint, fullName string) error
}

type PasswordRepository interface {
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
}

type SettingsService struct {
	settings  UserSettingsRepository
	profiles  ProfileRepository
	passwords PasswordRepository
}

func NewSettingsService(settings UserSettingsRepository, profiles ProfileRepository, passwords PasswordRepository) *SettingsService {
	return &SettingsService{
		settings:  settings,
		profiles:  profiles,
		passwords: passwords,
	}
}

// EnsureUserSettings returns the stored settings, creating the defaults on first use.
func (service *SettingsService) EnsureUserSettings(userID uint) (models.UserSettings, error) {
	settings, found, err := service.settings.FindByUserID(userID)
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	if found {
		return settings, nil
	}

	defaults := models.DefaultUserSettings(userID)
	if err := service.settings.CreateIfMissing(&defaults); err != nil {
		return models.UserSettings{}, fmt.Errorf("%w: %v", ErrSettingsSaveFailed, err)
	}

	settings, found, err = service.settings.FindByUserID(userID)
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	if !found {
		return defaults, nil
	}
	return settings, nil
}

func (service *SettingsService) SavePMSSettings(userID uint, input PMSSettingsInput, now time.Time, location *time.Location) (models.UserSettings, error) {
	current, err := service.EnsureUserSettings(userID)
	if err != nil {
		return models.UserSettings{}, err
	}

	updated, err := service.ResolvePMSSettings(current, input, now, location)
	if err != nil {
		return models.UserSettings{}, err
	}
	if err := service.settings.UpdatePMSSettings(updated); err != nil {
		return models.UserSettings{}, fmt.Errorf("%w: %v", ErrSettingsSaveFailed, err)
	}

	stored, found, err := service.settings.FindByUserID(userID)
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	if !found {
		return models.UserSettings{}, fmt.Errorf("%w: settings for user %d disappeared after save", ErrSettingsLoadFailed, userID)
	}
	return stored, nil
}

func (service *SettingsService) EnsureProfile(userID uint, fullName string) error {
	_, found, err := service.profiles.FindByUserID(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	if found {
		return nil
	}

	displayName, err := service.NormalizeDisplayName(fullName)
	if err != nil {
		displayName = ""
	}
	profile := models.Profile{UserID: userID, FullName: displayName}
	if err := service.profiles.CreateIfMissing(&profile); err != nil {
		return fmt.Errorf("%w: %v", ErrProfileSaveFailed, err)
	}
	return nil
}

func (service *SettingsService) LoadProfile(userID uint) (models.Profile, error) {
	if err := service.EnsureProfile(userID, ""); err != nil {
		return models.Profile{}, err
	}
	profile, found, err := service.profiles.FindByUserID(userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	if !found {
		return models.Profile{}, fmt.Errorf("%w: profile for user %d is missing", ErrProfileLoadFailed, userID)
	}
	return profile, nil
}

func (service *SettingsService) UpdateDisplayName(userID uint, raw string) (models.Profile, error) {
	displayName, err := service.NormalizeDisplayName(raw)
	if err != nil {
		return models.Profile{}, err
	}
	if err := service.EnsureProfile(userID, ""); err != nil {
		return models.Profile{}, err
	}
	if err := service.profiles.UpdateFullName(userID, displayName); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileSaveFailed, err)
	}
	return service.LoadProfile(userID)
}

func (service *SettingsService) ChangePassword(user models.User, currentPassword string, newPassword string, confirmPassword string) error {
	if err := service.ValidatePasswordChange(user.PasswordHash, currentPassword, newPassword, confirmPassword); err != nil {
		return err
	}
	passwordHash, err := HashPassword(strings.TrimSpace(newPassword))
	if err != nil {
		return ErrPasswordHashingFailed
	}
	if err := service.passwords.UpdatePassword(user.ID, passwordHash, false); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	return nil
}
