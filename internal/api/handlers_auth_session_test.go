package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/db"
	"github.com/terraincognita07/gentle75/internal/models"
)

func TestRegisterSeedsChallengeAndSetsSessionCookie(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":            " Maya@Example.com ",
		"password":         testPassword,
		"confirm_password": testPassword,
		"full_name":        "Maya",
	})
	if response.Status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", response.Status, string(response.Body))
	}

	cookie := responseCookie(response.Cookies, authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected auth cookie after register")
	}
	if !cookie.HttpOnly || cookie.Secure || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie flags %+v", cookie)
	}

	user, err := db.NewUserRepository(database).FindByNormalizedEmail("maya@example.com")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}

	var days, tasks int64
	database.Model(&models.ChallengeDay{}).Where("user_id = ?", user.ID).Count(&days)
	database.Model(&models.Task{}).Where("user_id = ?", user.ID).Count(&tasks)
	if days != models.ChallengeLength {
		t.Fatalf("expected %d seeded days, got %d", models.ChallengeLength, days)
	}
	if tasks != models.ChallengeLength*6 {
		t.Fatalf("expected 6 tasks per day without PMS-Safe, got %d", tasks)
	}

	profile, found, err := db.NewProfileRepository(database).FindByUserID(user.ID)
	if err != nil || !found || profile.FullName != "Maya" {
		t.Fatalf("expected seeded profile, got %+v found=%v err=%v", profile, found, err)
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "taken@example.com")

	tests := []struct {
		name    string
		payload fiber.Map
		status  int
		message string
	}{
		{
			name:    "duplicate email",
			payload: fiber.Map{"email": "TAKEN@example.com", "password": testPassword, "confirm_password": testPassword},
			status:  http.StatusConflict,
			message: "an account with this email already exists",
		},
		{
			name:    "weak password",
			payload: fiber.Map{"email": "weak@example.com", "password": "short", "confirm_password": "short"},
			status:  http.StatusBadRequest,
			message: "password must be at least 8 characters and include uppercase, lowercase and a digit",
		},
		{
			name:    "mismatch",
			payload: fiber.Map{"email": "mismatch@example.com", "password": testPassword, "confirm_password": "StrongPass2"},
			status:  http.StatusBadRequest,
			message: "passwords do not match",
		},
		{
			name:    "invalid email",
			payload: fiber.Map{"email": "not-an-email", "password": testPassword, "confirm_password": testPassword},
			status:  http.StatusBadRequest,
			message: "please enter a valid email",
		},
	}

	for _, test := range tests {
		response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", test.payload)
		if response.Status != test.status {
			t.Fatalf("%s: expected status %d, got %d", test.name, test.status, response.Status)
		}
		if got := response.errorMessage(t); got != test.message {
			t.Fatalf("%s: expected message %q, got %q", test.name, test.message, got)
		}
	}
}

func TestLoginRememberMeExtendsCookie(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "remember@example.com")

	short := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "remember@example.com",
		"password": testPassword,
	})
	long := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":       "remember@example.com",
		"password":    testPassword,
		"remember_me": true,
	})
	if short.Status != http.StatusOK || long.Status != http.StatusOK {
		t.Fatalf("expected both logins to succeed, got %d and %d", short.Status, long.Status)
	}

	shortCookie := responseCookie(short.Cookies, authCookieName)
	longCookie := responseCookie(long.Cookies, authCookieName)
	if shortCookie == nil || longCookie == nil {
		t.Fatal("expected auth cookies on both logins")
	}
	if until := time.Until(shortCookie.Expires); until > 8*24*time.Hour || until < 6*24*time.Hour {
		t.Fatalf("expected ~7 day cookie, got %v", until)
	}
	if until := time.Until(longCookie.Expires); until < 29*24*time.Hour {
		t.Fatalf("expected ~30 day cookie, got %v", until)
	}
}

func TestLoginAttemptLimiterBlocksAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "limited@example.com")

	for attempt := 0; attempt < loginAttemptsLimit; attempt++ {
		response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "limited@example.com",
			"password": "WrongPass1",
		})
		if response.Status != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", attempt+1, response.Status)
		}
		if got := response.errorMessage(t); got != "invalid credentials" {
			t.Fatalf("attempt %d: unexpected message %q", attempt+1, got)
		}
	}

	blocked := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "limited@example.com",
		"password": testPassword,
	})
	if blocked.Status != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after %d failures, got %d", loginAttemptsLimit, blocked.Status)
	}
}

func TestAuthRequiredRejectsMissingAndForgedSessions(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	missing := doJSON(t, app, http.MethodGet, "/api/dashboard", "", nil)
	if missing.Status != http.StatusUnauthorized || missing.errorMessage(t) != "unauthorized" {
		t.Fatalf("expected localized 401, got %d %s", missing.Status, string(missing.Body))
	}

	russian := doJSON(t, app, http.MethodGet, "/api/dashboard", "", nil, "Accept-Language", "ru-RU,ru;q=0.9")
	if got := russian.errorMessage(t); got != "требуется вход" {
		t.Fatalf("expected russian error message, got %q", got)
	}

	forged := doJSON(t, app, http.MethodGet, "/api/dashboard", authCookieName+"=not-a-token", nil)
	if forged.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", forged.Status)
	}
}

func TestMustChangePasswordGatesTheAPI(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	registerTestUser(t, app, "reset@example.com")

	users := db.NewUserRepository(database)
	user, err := users.FindByNormalizedEmail("reset@example.com")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if err := users.UpdatePassword(user.ID, user.PasswordHash, true); err != nil {
		t.Fatalf("flag user: %v", err)
	}

	login := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "reset@example.com",
		"password": testPassword,
	})
	payload := map[string]any{}
	login.decode(t, &payload)
	if payload["must_change_password"] != true {
		t.Fatalf("expected login to report a required password change, got %v", payload)
	}
	cookie := authCookieHeader(t, login)

	blocked := doJSON(t, app, http.MethodGet, "/api/dashboard", cookie, nil)
	if blocked.Status != http.StatusForbidden || blocked.errorMessage(t) != "password change required" {
		t.Fatalf("expected 403 before password change, got %d %s", blocked.Status, string(blocked.Body))
	}

	changed := doJSON(t, app, http.MethodPost, "/api/settings/change-password", cookie, fiber.Map{
		"current_password": testPassword,
		"new_password":     "NewStrongPass2",
		"confirm_password": "NewStrongPass2",
	})
	if changed.Status != http.StatusOK {
		t.Fatalf("expected password change to succeed, got %d %s", changed.Status, string(changed.Body))
	}

	allowed := doJSON(t, app, http.MethodGet, "/api/dashboard", cookie, nil)
	if allowed.Status != http.StatusOK {
		t.Fatalf("expected dashboard after password change, got %d %s", allowed.Status, string(allowed.Body))
	}
}

func TestLogoutExpiresSessionCookie(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "logout@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/auth/logout", cookie, nil)
	if response.Status != http.StatusOK {
		t.Fatalf("expected logout status 200, got %d", response.Status)
	}
	cleared := responseCookie(response.Cookies, authCookieName)
	if cleared == nil || cleared.Value != "" || !cleared.Expires.Before(time.Now()) {
		t.Fatalf("expected expired auth cookie, got %+v", cleared)
	}
}

func TestSecureCookiesFollowConfiguration(t *testing.T) {
	t.Parallel()

	app, _ := newTestAppWithCookieSecure(t, true)
	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":            "secure@example.com",
		"password":         testPassword,
		"confirm_password": testPassword,
	})
	cookie := responseCookie(response.Cookies, authCookieName)
	if cookie == nil || !cookie.Secure {
		t.Fatalf("expected secure auth cookie, got %+v", cookie)
	}

	language := doJSON(t, app, http.MethodGet, "/lang/ru", "", nil)
	languageCookie := responseCookie(language.Cookies, languageCookieName)
	if languageCookie == nil || !languageCookie.Secure || languageCookie.Value != "ru" {
		t.Fatalf("expected secure ru language cookie, got %+v", languageCookie)
	}
}
