package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/db"
	"github.com/terraincognita07/gentle75/internal/i18n"
	"github.com/terraincognita07/gentle75/internal/models"
	"github.com/terraincognita07/gentle75/internal/services"
	"gorm.io/gorm"
)

const testPassword = "StrongPass1"

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithCookieSecure(t, false)
}

func newTestAppWithCookieSecure(t *testing.T, cookieSecure bool) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "gentle75-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, "test-secret-key-0123456789abcdef0123", time.UTC, i18nManager, cookieSecure)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return app, database
}

type testResponse struct {
	Status  int
	Body    []byte
	Cookies []*http.Cookie
}

func (response testResponse) decode(t *testing.T, target any) {
	t.Helper()
	if err := json.Unmarshal(response.Body, target); err != nil {
		t.Fatalf("decode response %s: %v", string(response.Body), err)
	}
}

func (response testResponse) errorMessage(t *testing.T) string {
	t.Helper()
	payload := map[string]string{}
	response.decode(t, &payload)
	return payload["error"]
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, cookie string, body any, headers ...string) testResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		request.Header.Set(headers[i], headers[i+1])
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return testResponse{Status: response.StatusCode, Body: payload, Cookies: response.Cookies()}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func authCookieHeader(t *testing.T, response testResponse) string {
	t.Helper()
	cookie := responseCookie(response.Cookies, authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("auth cookie is missing, status %d body %s", response.Status, string(response.Body))
	}
	return cookie.Name + "=" + cookie.Value
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":            email,
		"password":         testPassword,
		"confirm_password": testPassword,
		"full_name":        "Maya",
	})
	if response.Status != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d: %s", response.Status, string(response.Body))
	}
	return authCookieHeader(t, response)
}

// createUnseededUser stores an account without running the seed routine, so
// that materialization happens lazily on the first reads.
func createUnseededUser(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	hash, err := services.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Email: email, PasswordHash: hash, CreatedAt: testNow}
	if err := db.NewUserRepository(database).Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func loginTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": testPassword,
	})
	if response.Status != http.StatusOK {
		t.Fatalf("expected login status 200, got %d: %s", response.Status, string(response.Body))
	}
	return authCookieHeader(t, response)
}

type testTask struct {
	ID           string  `json:"id"`
	Key          string  `json:"key"`
	Required     bool    `json:"required"`
	Completed    bool    `json:"completed"`
	Variant      *string `json:"variant"`
	DisplayTitle string  `json:"display_title"`
	VariantTitle string  `json:"variant_title"`
}

type testDay struct {
	ID            string     `json:"id"`
	DayNumber     int        `json:"day_number"`
	Date          string     `json:"date"`
	Notes         string     `json:"notes"`
	Mood          *string    `json:"mood"`
	MoodLabel     string     `json:"mood_label"`
	Symptoms      []string   `json:"symptoms"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at"`
	IsToday       bool       `json:"is_today"`
	IsPMSWindow   bool       `json:"is_pms_window"`
	SymptomLabels []string   `json:"symptom_labels"`
}

type testDayResponse struct {
	Day   *testDay   `json:"day"`
	Tasks []testTask `json:"tasks"`
}

func fetchDay(t *testing.T, app *fiber.App, cookie string, number string) testDayResponse {
	t.Helper()

	response := doJSON(t, app, http.MethodGet, "/api/days/"+number, cookie, nil)
	if response.Status != http.StatusOK {
		t.Fatalf("expected day status 200, got %d: %s", response.Status, string(response.Body))
	}
	payload := testDayResponse{}
	response.decode(t, &payload)
	return payload
}

func taskKeys(tasks []testTask) map[string]testTask {
	byKey := make(map[string]testTask, len(tasks))
	for _, task := range tasks {
		byKey[task.Key] = task
	}
	return byKey
}
