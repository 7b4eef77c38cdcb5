package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campushub_backend/internals/configs"
	"campushub_backend/internals/databases/inmem"
	routes "campushub_backend/internals/route"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	store := inmem.Open("")
	app := fiber.New()
	routes.SetupRoutes(app, routes.Deps{
		Users:         inmem.NewUserRepository(store),
		Tokens:        inmem.NewTokenRepository(store),
		Events:        inmem.NewEventRepository(store),
		Faqs:          inmem.NewFaqRepository(store),
		Notifications: inmem.NewNotificationRepository(store),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func register(t *testing.T, app *fiber.App, name, email, role string) {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"user_name": name,
		"email":     email,
		"password":  "demo-password",
		"role":      role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "demo-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	tokens := data["tokens"].(map[string]any)
	return tokens["access_token"].(string)
}

func TestNavigationMatchesRole(t *testing.T) {
	app := setupApp(t)

	register(t, app, "Aisyah", "aisyah@campus.test", "student")
	register(t, app, "Dina", "dina@campus.test", "teacher")

	studentToken := login(t, app, "aisyah@campus.test")
	teacherToken := login(t, app, "dina@campus.test")

	resp, body := doJSON(t, app, http.MethodGet, "/api/u/navigation", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	studentData := body["data"].(map[string]any)
	assert.Equal(t, "student", studentData["role"])
	studentMenu := studentData["items"].([]any)

	resp, body = doJSON(t, app, http.MethodGet, "/api/u/navigation", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	teacherData := body["data"].(map[string]any)
	assert.Equal(t, "teacher", teacherData["role"])
	teacherMenu := teacherData["items"].([]any)

	assert.NotEmpty(t, studentMenu)
	assert.NotEmpty(t, teacherMenu)
	assert.NotEqual(t, studentMenu, teacherMenu)

	// No session, no menu.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/u/navigation", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRoleMismatchCarriesActualRole(t *testing.T) {
	app := setupApp(t)
	register(t, app, "Aisyah", "aisyah@campus.test", "student")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "aisyah@campus.test",
		"password": "demo-password",
		"role":     "teacher",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "student", data["actual_role"])
}

func TestEventLifecycleOverHTTP(t *testing.T) {
	app := setupApp(t)

	register(t, app, "Dina", "dina@campus.test", "teacher")
	register(t, app, "Aisyah", "aisyah@campus.test", "student")
	teacherToken := login(t, app, "dina@campus.test")
	studentToken := login(t, app, "aisyah@campus.test")

	now := time.Now()
	resp, body := doJSON(t, app, http.MethodPost, "/api/t/events", teacherToken, fiber.Map{
		"event_title":             "Go Workshop",
		"event_description":       "Hands-on session",
		"event_category":          "workshop",
		"event_starts_at":         now.Add(48 * time.Hour).Format(time.RFC3339),
		"event_deadline":          now.Add(24 * time.Hour).Format(time.RFC3339),
		"event_participant_limit": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	eventID := body["data"].(map[string]any)["event_id"].(string)

	// Students cannot publish events.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/t/events", studentToken, fiber.Map{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The event shows up on the public catalog without a session.
	resp, body = doJSON(t, app, http.MethodGet, "/api/public/events", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]any), 1)

	registerPath := fmt.Sprintf("/api/u/events/%s/register", eventID)
	resp, _ = doJSON(t, app, http.MethodPost, registerPath, studentToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Registering twice conflicts.
	resp, _ = doJSON(t, app, http.MethodPost, registerPath, studentToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Teachers are locked out of student registration endpoints.
	resp, _ = doJSON(t, app, http.MethodPost, registerPath, teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/t/events/%s/registrations", eventID), teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]any), 1)

	resp, body = doJSON(t, app, http.MethodGet, "/api/u/registrations", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]any), 1)
}

func TestUpdateEventRejectsDeadlineAfterStart(t *testing.T) {
	app := setupApp(t)

	register(t, app, "Dina", "dina@campus.test", "teacher")
	teacherToken := login(t, app, "dina@campus.test")

	now := time.Now()
	start := now.Add(48 * time.Hour)
	resp, body := doJSON(t, app, http.MethodPost, "/api/t/events", teacherToken, fiber.Map{
		"event_title":       "Go Workshop",
		"event_description": "Hands-on session",
		"event_category":    "workshop",
		"event_starts_at":   start.Format(time.RFC3339),
		"event_deadline":    now.Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	eventID := body["data"].(map[string]any)["event_id"].(string)
	eventPath := "/api/t/events/" + eventID

	// Deadline cannot be moved past the event start.
	resp, _ = doJSON(t, app, http.MethodPatch, eventPath, teacherToken, fiber.Map{
		"event_deadline": start.Add(24 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Nor can the start be pulled back before the stored deadline.
	resp, _ = doJSON(t, app, http.MethodPatch, eventPath, teacherToken, fiber.Map{
		"event_starts_at": now.Add(12 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// A consistent pair still goes through.
	resp, _ = doJSON(t, app, http.MethodPatch, eventPath, teacherToken, fiber.Map{
		"event_starts_at": now.Add(72 * time.Hour).Format(time.RFC3339),
		"event_deadline":  now.Add(36 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogoutInvalidatesAccessToken(t *testing.T) {
	app := setupApp(t)

	register(t, app, "Aisyah", "aisyah@campus.test", "student")
	token := login(t, app, "aisyah@campus.test")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/u/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/u/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
