package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"lifetrack/internal/db"
	"lifetrack/internal/reporting"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type recordingTestMailer struct {
	sentTo   []string
	lastCode string
}

func (mailer *recordingTestMailer) SendVerificationCode(_ context.Context, to string, code string) error {
	mailer.sentTo = append(mailer.sentTo, to)
	mailer.lastCode = code
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithConfig(t, HandlerConfig{
		SecretKey:  "test-secret",
		Location:   time.UTC,
		Vocabulary: reporting.DefaultVocabulary(),
	})
}

func newTestAppWithConfig(t *testing.T, cfg HandlerConfig) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "lifetrack-test.db")
	database, err := db.OpenSQLite(databasePath)
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

	handler := NewHandler(database, cfg)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(t *testing.T, method string, target string, payload any, token string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func decodeJSONBody(t *testing.T, body io.Reader, out any) {
	t.Helper()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	var payload struct {
		Error string `json:"error"`
	}
	decodeJSONBody(t, body, &payload)
	return payload.Error
}

// registerTestUser registers through the public endpoint and returns the
// bearer token. Default categories are seeded as a side effect.
func registerTestUser(t *testing.T, app *fiber.App, name string) string {
	t.Helper()

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/register", map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "StrongPass1",
	}, ""), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status 201, got %d: %s", response.StatusCode, string(body))
	}

	var payload struct {
		Token string `json:"token"`
	}
	decodeJSONBody(t, response.Body, &payload)
	if payload.Token == "" {
		t.Fatalf("expected a session token in the register response")
	}
	return payload.Token
}

type testCategoryPayload struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Fields      []testFieldPayload `json:"fields"`
}

type testFieldPayload struct {
	Label    string `json:"label"`
	DataType string `json:"data_type"`
	Unit     string `json:"unit"`
}

func createTestCategory(t *testing.T, app *fiber.App, token string, payload testCategoryPayload) uint {
	t.Helper()

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/categories/", payload, token), -1)
	if err != nil {
		t.Fatalf("create category request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status 201, got %d: %s", response.StatusCode, string(body))
	}

	var created struct {
		ID uint `json:"id"`
	}
	decodeJSONBody(t, response.Body, &created)
	if created.ID == 0 {
		t.Fatalf("expected a category id in the response")
	}
	return created.ID
}

func createTestEntry(t *testing.T, app *fiber.App, token string, categoryID uint, occurredAt string, values map[string]any) uint {
	t.Helper()

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/entries/", map[string]any{
		"category_id": categoryID,
		"occurred_at": occurredAt,
		"values":      values,
	}, token), -1)
	if err != nil {
		t.Fatalf("create entry request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status 201, got %d: %s", response.StatusCode, string(body))
	}

	var created struct {
		ID uint `json:"id"`
	}
	decodeJSONBody(t, response.Body, &created)
	return created.ID
}
