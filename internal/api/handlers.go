package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/gentle75/internal/db"
	"github.com/terraincognita07/gentle75/internal/i18n"
	"github.com/terraincognita07/gentle75/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	loginLimiter *attemptLimiter
	now          func() time.Time

	repositories    *db.Repositories
	authService     *services.AuthService
	settingsService *services.SettingsService
	challengeSvc    *services.ChallengeService
	dayLogService   *services.DayLogService
	progressService *services.ProgressService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		loginLimiter: newAttemptLimiter(),
		now:          time.Now,
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repositories := db.NewRepositories(database)
	handler.repositories = repositories
	handler.settingsService = services.NewSettingsService(repositories.Settings, repositories.Profiles, repositories.Users)
	handler.challengeSvc = services.NewChallengeService(repositories.ChallengeDays, repositories.Tasks, handler.settingsService)
	handler.authService = services.NewAuthService(repositories.Users, handler.challengeSvc)
	handler.dayLogService = services.NewDayLogService(repositories.ChallengeDays, repositories.Tasks)
	handler.progressService = services.NewProgressService(repositories.ChallengeDays, repositories.Tasks)
	return handler
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
