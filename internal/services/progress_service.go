package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/gentle75/internal/models"
)

type ProgressTaskReader interface {
	ListByUser(userID uint) ([]models.Task, error)
}

type ProgressDayReader interface {
	ListByUser(userID uint) ([]models.ChallengeDay, error)
	ListByUserNewestFirst(userID uint) ([]models.ChallengeDay, error)
}

type DayProgressPoint struct {
	DayNumber         int    `json:"day_number"`
	Date              string `json:"date"`
	RequiredCompleted int    `json:"required_completed"`
	RequiredTotal     int    `json:"required_total"`
	IsCompleted       bool   `json:"is_completed"`
}

type FrequencyItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type ProgressSummary struct {
	DayNumber       int                `json:"day_number"`
	TotalDays       int                `json:"total_days"`
	ProgressPercent float64            `json:"progress_percent"`
	Streak          int                `json:"streak"`
	CompletionRate  float64            `json:"completion_rate"`
	ElapsedDays     int                `json:"elapsed_days"`
	CompletedDays   int                `json:"completed_days"`
	Series          []DayProgressPoint `json:"series"`
	Moods           []FrequencyItem    `json:"moods"`
	Symptoms        []FrequencyItem    `json:"symptoms"`
}

type ProgressService struct {
	days  ProgressDayReader
	tasks ProgressTaskReader
}

func NewProgressService(days ProgressDayReader, tasks ProgressTaskReader) *ProgressService {
	return &ProgressService{days: days, tasks: tasks}
}

func sortedNewestFirst(days []models.ChallengeDay) []models.ChallengeDay {
	ordered := make([]models.ChallengeDay, len(days))
	copy(ordered, days)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].DayNumber > ordered[j].DayNumber
	})
	return ordered
}

// CalculateStreak counts consecutive completed days ending today. Future days
// are skipped, and an unfinished today neither counts nor breaks the streak.
func CalculateStreak(days []models.ChallengeDay, today time.Time) int {
	today = StoredDate(today)
	streak := 0
	for _, day := range sortedNewestFirst(days) {
		date := StoredDate(day.Date)
		if date.After(today) {
			continue
		}
		if date.Equal(today) {
			if day.IsCompleted {
				streak++
			}
			continue
		}
		if !day.IsCompleted {
			break
		}
		streak++
	}
	return streak
}

func elapsedDays(days []models.ChallengeDay, today time.Time) []models.ChallengeDay {
	today = StoredDate(today)
	elapsed := make([]models.ChallengeDay, 0, len(days))
	for _, day := range days {
		if !StoredDate(day.Date).After(today) {
			elapsed = append(elapsed, day)
		}
	}
	return elapsed
}

// CompletionRate is the share of elapsed days that are completed, in percent.
func CompletionRate(days []models.ChallengeDay, today time.Time) float64 {
	elapsed := elapsedDays(days, today)
	if len(elapsed) == 0 {
		return 0
	}
	completed := 0
	for _, day := range elapsed {
		if day.IsCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(elapsed)) * 100
}

func CurrentDayNumber(days []models.ChallengeDay, today time.Time) int {
	today = StoredDate(today)
	for _, day := range days {
		if StoredDate(day.Date).Equal(today) {
			return day.DayNumber
		}
	}
	return 1
}

func FindDayByNumber(days []models.ChallengeDay, dayNumber int) (models.ChallengeDay, bool) {
	for _, day := range days {
		if day.DayNumber == dayNumber {
			return day, true
		}
	}
	return models.ChallengeDay{}, false
}

func BuildDaySeries(days []models.ChallengeDay, tasks []models.Task, today time.Time) []DayProgressPoint {
	type counter struct{ done, total int }
	perDay := make(map[uuid.UUID]counter, len(days))
	for _, task := range tasks {
		if !task.Required {
			continue
		}
		current := perDay[task.ChallengeDayID]
		current.total++
		if task.Completed {
			current.done++
		}
		perDay[task.ChallengeDayID] = current
	}

	elapsed := elapsedDays(days, today)
	sort.Slice(elapsed, func(i, j int) bool {
		return elapsed[i].DayNumber < elapsed[j].DayNumber
	})

	series := make([]DayProgressPoint, 0, len(elapsed))
	for _, day := range elapsed {
		counts := perDay[day.ID]
		series = append(series, DayProgressPoint{
			DayNumber:         day.DayNumber,
			Date:              FormatCalendarDate(day.Date),
			RequiredCompleted: counts.done,
			RequiredTotal:     counts.total,
			IsCompleted:       day.IsCompleted,
		})
	}
	return series
}

func MoodFrequencies(days []models.ChallengeDay, today time.Time) []FrequencyItem {
	counts := make(map[string]int)
	for _, day := range elapsedDays(days, today) {
		if day.Mood != nil {
			counts[*day.Mood]++
		}
	}
	return frequencyItems(models.Moods(), counts)
}

func SymptomFrequencies(days []models.ChallengeDay, today time.Time) []FrequencyItem {
	counts := make(map[string]int)
	for _, day := range elapsedDays(days, today) {
		for _, symptom := range day.Symptoms {
			counts[symptom]++
		}
	}
	return frequencyItems(models.Symptoms(), counts)
}

func frequencyItems(catalog []string, counts map[string]int) []FrequencyItem {
	items := make([]FrequencyItem, 0, len(catalog))
	for _, key := range catalog {
		items = append(items, FrequencyItem{Key: key, Count: counts[key]})
	}
	return items
}

func (service *ProgressService) BuildSummary(days []models.ChallengeDay, tasks []models.Task, now time.Time, location *time.Location) ProgressSummary {
	today := CalendarDate(now, location)
	elapsed := elapsedDays(days, today)
	completed := 0
	for _, day := range elapsed {
		if day.IsCompleted {
			completed++
		}
	}

	dayNumber := CurrentDayNumber(days, today)
	return ProgressSummary{
		DayNumber:       dayNumber,
		TotalDays:       models.ChallengeLength,
		ProgressPercent: float64(dayNumber) / float64(models.ChallengeLength) * 100,
		Streak:          CalculateStreak(days, today),
		CompletionRate:  CompletionRate(days, today),
		ElapsedDays:     len(elapsed),
		CompletedDays:   completed,
		Series:          BuildDaySeries(days, tasks, today),
		Moods:           MoodFrequencies(days, today),
		Symptoms:        SymptomFrequencies(days, today),
	}
}

// LoadStreak reads only the completion columns, newest day first.
func (service *ProgressService) LoadStreak(userID uint, now time.Time, location *time.Location) (int, error) {
	days, err := service.days.ListByUserNewestFirst(userID)
	if err != nil {
		return 0, err
	}
	return CalculateStreak(days, CalendarDate(now, location)), nil
}

func (service *ProgressService) LoadSummary(userID uint, now time.Time, location *time.Location) (ProgressSummary, error) {
	days, err := service.days.ListByUser(userID)
	if err != nil {
		return ProgressSummary{}, err
	}
	tasks, err := service.tasks.ListByUser(userID)
	if err != nil {
		return ProgressSummary{}, err
	}
	return service.BuildSummary(days, tasks, now, location), nil
}
