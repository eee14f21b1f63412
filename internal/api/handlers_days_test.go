package api

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/models"
)

func TestDashboardReportsTodayAndTimeline(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "dashboard@example.com")

	response := doJSON(t, app, http.MethodGet, "/api/dashboard", cookie, nil)
	if response.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", response.Status, string(response.Body))
	}

	payload := struct {
		DisplayName string     `json:"display_name"`
		Day         *testDay   `json:"day"`
		Tasks       []testTask `json:"tasks"`
		Stats       struct {
			DayNumber      int     `json:"day_number"`
			TotalDays      int     `json:"total_days"`
			Streak         int     `json:"streak"`
			CompletionRate float64 `json:"completion_rate"`
		} `json:"stats"`
		Timeline []timelineItem `json:"timeline"`
		PMS      struct {
			Enabled         bool    `json:"enabled"`
			InWindow        bool    `json:"in_window"`
			WaterGoalLiters float64 `json:"water_goal_liters"`
		} `json:"pms"`
	}{}
	response.decode(t, &payload)

	if payload.DisplayName != "Maya" {
		t.Fatalf("expected display name Maya, got %q", payload.DisplayName)
	}
	if payload.Day == nil || payload.Day.DayNumber != 1 || payload.Day.Date != "2026-03-10" || !payload.Day.IsToday {
		t.Fatalf("expected today to be day 1 on 2026-03-10, got %+v", payload.Day)
	}
	if len(payload.Tasks) != 6 {
		t.Fatalf("expected 6 tasks without PMS-Safe, got %d", len(payload.Tasks))
	}
	if payload.Tasks[0].Key != models.TaskWorkout1 || payload.Tasks[5].Key != models.TaskPhoto {
		t.Fatalf("expected catalog task order, got %+v", payload.Tasks)
	}
	if payload.Stats.DayNumber != 1 || payload.Stats.TotalDays != models.ChallengeLength || payload.Stats.Streak != 0 {
		t.Fatalf("unexpected stats %+v", payload.Stats)
	}
	if len(payload.Timeline) != models.ChallengeLength || !payload.Timeline[0].IsToday || !payload.Timeline[1].IsFuture {
		t.Fatalf("unexpected timeline head %+v", payload.Timeline[:2])
	}
	if payload.Timeline[74].Date != "2026-05-23" {
		t.Fatalf("expected day 75 on 2026-05-23, got %s", payload.Timeline[74].Date)
	}
	if payload.PMS.Enabled || payload.PMS.InWindow || payload.PMS.WaterGoalLiters != models.DefaultWaterGoalLiters {
		t.Fatalf("unexpected pms status %+v", payload.PMS)
	}
}

func TestDashboardMaterializesChallengeForUnseededUser(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	user := createUnseededUser(t, database, "lazy@example.com")
	cookie := loginTestUser(t, app, user.Email)

	for i := 0; i < 2; i++ {
		response := doJSON(t, app, http.MethodGet, "/api/dashboard", cookie, nil)
		if response.Status != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", response.Status, string(response.Body))
		}
	}

	var days, tasks int64
	database.Model(&models.ChallengeDay{}).Where("user_id = ?", user.ID).Count(&days)
	database.Model(&models.Task{}).Where("user_id = ?", user.ID).Count(&tasks)
	if days != models.ChallengeLength {
		t.Fatalf("expected %d days after repeated reads, got %d", models.ChallengeLength, days)
	}
	if tasks != 6 {
		t.Fatalf("expected only today's 6 tasks, got %d", tasks)
	}
}

func TestGetDayReturnsEmptyStateForUnknownNumbers(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "empty@example.com")

	for _, number := range []string{"0", "76", "-3", "abc"} {
		payload := fetchDay(t, app, cookie, number)
		if payload.Day != nil || len(payload.Tasks) != 0 {
			t.Fatalf("day %s: expected empty state, got %+v", number, payload)
		}
	}

	payload := fetchDay(t, app, cookie, "75")
	if payload.Day == nil || payload.Day.DayNumber != 75 || len(payload.Tasks) != 6 {
		t.Fatalf("expected day 75 with tasks, got %+v", payload)
	}
}

func TestGetDaysListsAllDaysInOrder(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "list@example.com")

	response := doJSON(t, app, http.MethodGet, "/api/days", cookie, nil)
	payload := struct {
		Days []testDay `json:"days"`
	}{}
	response.decode(t, &payload)
	if len(payload.Days) != models.ChallengeLength {
		t.Fatalf("expected %d days, got %d", models.ChallengeLength, len(payload.Days))
	}
	for index, day := range payload.Days {
		if day.DayNumber != index+1 {
			t.Fatalf("expected day %d at index %d, got %d", index+1, index, day.DayNumber)
		}
	}
}

func TestUpdateDayLogStoresCanonicalValues(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "log@example.com")

	response := doJSON(t, app, http.MethodPatch, "/api/days/1/log", cookie, fiber.Map{
		"notes":    "  slow morning  ",
		"mood":     "anxious",
		"symptoms": []string{"Cramps", "cramps", "fatigue"},
	})
	if response.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", response.Status, string(response.Body))
	}
	payload := struct {
		Day testDay `json:"day"`
	}{}
	response.decode(t, &payload)
	if payload.Day.Notes != "slow morning" || payload.Day.Mood == nil || *payload.Day.Mood != models.MoodAnxious {
		t.Fatalf("unexpected stored log %+v", payload.Day)
	}
	if strings.Join(payload.Day.Symptoms, ",") != "cramps,fatigue" {
		t.Fatalf("expected deduplicated symptoms, got %v", payload.Day.Symptoms)
	}
	if strings.Join(payload.Day.SymptomLabels, ",") != "Cramps,Fatigue" || payload.Day.MoodLabel != "Anxious" {
		t.Fatalf("unexpected labels %+v", payload.Day)
	}

	reloaded := fetchDay(t, app, cookie, "1")
	if reloaded.Day == nil || reloaded.Day.Notes != "slow morning" {
		t.Fatalf("expected persisted notes, got %+v", reloaded.Day)
	}

	cleared := doJSON(t, app, http.MethodPatch, "/api/days/1/log", cookie, fiber.Map{
		"notes":    "",
		"mood":     "",
		"symptoms": []string{},
	})
	clearedPayload := struct {
		Day testDay `json:"day"`
	}{}
	cleared.decode(t, &clearedPayload)
	if clearedPayload.Day.Mood != nil || len(clearedPayload.Day.Symptoms) != 0 {
		t.Fatalf("expected cleared log, got %+v", clearedPayload.Day)
	}
}

func TestUpdateDayLogRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "invalid-log@example.com")

	tests := []struct {
		name    string
		path    string
		payload fiber.Map
		status  int
		message string
	}{
		{"unknown mood", "/api/days/1/log", fiber.Map{"mood": "Furious"}, http.StatusBadRequest, "unknown mood"},
		{"unknown symptom", "/api/days/1/log", fiber.Map{"symptoms": []string{"nausea"}}, http.StatusBadRequest, "unknown symptom"},
		{"notes too long", "/api/days/1/log", fiber.Map{"notes": strings.Repeat("a", models.MaxDayNotesRunes+1)}, http.StatusBadRequest, "notes are too long"},
		{"day out of range", "/api/days/" + strconv.Itoa(models.ChallengeLength+1) + "/log", fiber.Map{"notes": "x"}, http.StatusNotFound, "day not found"},
	}

	for _, test := range tests {
		response := doJSON(t, app, http.MethodPatch, test.path, cookie, test.payload)
		if response.Status != test.status {
			t.Fatalf("%s: expected status %d, got %d", test.name, test.status, response.Status)
		}
		if got := response.errorMessage(t); got != test.message {
			t.Fatalf("%s: expected %q, got %q", test.name, test.message, got)
		}
	}
}
