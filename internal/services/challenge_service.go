package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/gentle75/internal/models"
)

type ChallengeDayRepository interface {
	ListByUser(userID uint) ([]models.ChallengeDay, error)
	ListAnchors(userID uint) ([]models.ChallengeDay, error)
	CreateBatch(days []models.ChallengeDay) error
}

type TaskRepository interface {
	ListKeysByDay(dayID uuid.UUID) ([]string, error)
	CreateBatch(tasks []models.Task) error
}

type SeedSettingsProvider interface {
	EnsureProfile(userID uint, fullName string) error
	EnsureUserSettings(userID uint) (models.UserSettings, error)
}

// ChallengeService lazily materializes the 75 challenge days and their task
// sets. Every Ensure* call is idempotent and only ever inserts.
type ChallengeService struct {
	days     ChallengeDayRepository
	tasks    TaskRepository
	settings SeedSettingsProvider
}

func NewChallengeService(days ChallengeDayRepository, tasks TaskRepository, settings SeedSettingsProvider) *ChallengeService {
	return &ChallengeService{
		days:     days,
		tasks:    tasks,
		settings: settings,
	}
}

// ChallengeStartDate resolves the date of day 1. With no days stored the
// challenge starts today; otherwise it is anchored on day 1 or, when day 1 is
// missing, back-computed from the lowest stored day.
func ChallengeStartDate(existing []models.ChallengeDay, today time.Time) time.Time {
	if len(existing) == 0 {
		return StoredDate(today)
	}

	lowest := existing[0]
	for _, day := range existing[1:] {
		if day.DayNumber < lowest.DayNumber {
			lowest = day
		}
	}
	return StoredDate(lowest.Date).AddDate(0, 0, -(lowest.DayNumber - 1))
}

func MissingDayNumbers(existing []models.ChallengeDay) []int {
	present := make(map[int]struct{}, len(existing))
	for _, day := range existing {
		present[day.DayNumber] = struct{}{}
	}

	missing := make([]int, 0, models.ChallengeLength-len(present))
	for number := 1; number <= models.ChallengeLength; number++ {
		if _, ok := present[number]; !ok {
			missing = append(missing, number)
		}
	}
	return missing
}

func WantedTaskKinds(isPMSWindow bool) []models.TaskKind {
	catalog := models.DefaultTaskKinds()
	wanted := make([]models.TaskKind, 0, len(catalog))
	for _, kind := range catalog {
		if kind.PMSOnly && !isPMSWindow {
			continue
		}
		wanted = append(wanted, kind)
	}
	return wanted
}

func (service *ChallengeService) EnsureChallengeDays(userID uint, now time.Time, location *time.Location) {
	existing, err := service.days.ListAnchors(userID)
	if err != nil {
		log.Printf("ensure challenge days: load days for user %d: %v", userID, err)
		return
	}

	missing := MissingDayNumbers(existing)
	if len(missing) == 0 {
		return
	}

	start := ChallengeStartDate(existing, CalendarDate(now, location))
	rows := make([]models.ChallengeDay, 0, len(missing))
	for _, number := range missing {
		rows = append(rows, models.ChallengeDay{
			UserID:    userID,
			DayNumber: number,
			Date:      start.AddDate(0, 0, number-1),
		})
	}
	if err := service.days.CreateBatch(rows); err != nil {
		log.Printf("ensure challenge days: insert %d days for user %d: %v", len(rows), userID, err)
	}
}

// EnsureTasks fills in missing catalog tasks for a day. PMS-only kinds are
// decided once, when the day gets its first tasks; a day that already has
// tasks only gets missing required kinds back.
func (service *ChallengeService) EnsureTasks(userID uint, dayID uuid.UUID, isPMSWindow bool) {
	keys, err := service.tasks.ListKeysByDay(dayID)
	if err != nil {
		log.Printf("ensure tasks: load tasks for day %s: %v", dayID, err)
		return
	}

	present := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		present[key] = struct{}{}
	}

	rows := make([]models.Task, 0)
	for _, kind := range WantedTaskKinds(isPMSWindow) {
		if _, ok := present[kind.Key]; ok {
			continue
		}
		if kind.PMSOnly && len(present) > 0 {
			continue
		}
		rows = append(rows, models.Task{
			UserID:         userID,
			ChallengeDayID: dayID,
			Key:            kind.Key,
			Title:          kind.Title,
			Required:       kind.Required,
		})
	}
	if len(rows) == 0 {
		return
	}
	if err := service.tasks.CreateBatch(rows); err != nil {
		log.Printf("ensure tasks: insert %d tasks for day %s: %v", len(rows), dayID, err)
	}
}

// EnsureDayWithTasks decides PMS membership from the day's own date with the
// settings the caller already loaded.
func (service *ChallengeService) EnsureDayWithTasks(userID uint, day models.ChallengeDay, settings models.UserSettings) {
	service.EnsureTasks(userID, day.ID, IsInPMSWindow(day.Date, settings))
}

func (service *ChallengeService) ListDays(userID uint) ([]models.ChallengeDay, error) {
	days, err := service.days.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].DayNumber < days[j].DayNumber
	})
	return days, nil
}

// SeedUserData runs the full first-use routine: profile, settings, the 75
// days and the task set of every day.
func (service *ChallengeService) SeedUserData(userID uint, fullName string, now time.Time, location *time.Location) error {
	if err := service.settings.EnsureProfile(userID, fullName); err != nil {
		return err
	}
	settings, err := service.settings.EnsureUserSettings(userID)
	if err != nil {
		return err
	}

	service.EnsureChallengeDays(userID, now, location)

	days, err := service.ListDays(userID)
	if err != nil {
		return fmt.Errorf("list challenge days: %w", err)
	}
	for _, day := range days {
		service.EnsureDayWithTasks(userID, day, settings)
	}
	return nil
}
