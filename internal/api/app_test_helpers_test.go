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

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/periodcalendar/internal/db"
	"github.com/terraincognita07/periodcalendar/internal/logger"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

const (
	testSecretKey = "0123456789abcdef0123456789abcdef"
	testPassword  = "Cycle2024Secret"
)

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

type testApp struct {
	app     *fiber.App
	handler *Handler
	sender  *recordingSender
}

type recordingSender struct {
	sent []services.Reminder
}

func (sender *recordingSender) Send(_ context.Context, reminder services.Reminder) error {
	sender.sent = append(sender.sent, reminder)
	return nil
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	log := logger.Discard()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "periodcalendar-api-test.db"), log)
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

	sender := &recordingSender{}
	handler, err := NewHandler(database, Options{
		SecretKey: []byte(testSecretKey),
		Location:  time.UTC,
		Log:       log,
		Sender:    sender,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	return &testApp{app: NewApp(handler, log), handler: handler, sender: sender}
}

func (ta *testApp) do(t *testing.T, method string, target string, token string, body any) *http.Response {
	t.Helper()

	request := newJSONRequest(t, method, target, body)
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func newJSONRequest(t *testing.T, method string, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, target, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return request
}

// setup configures testPassword and returns the issued token.
func (ta *testApp) setup(t *testing.T) string {
	t.Helper()

	response := ta.do(t, http.MethodPost, "/api/auth/setup", "", fiber.Map{"password": testPassword})
	assertStatus(t, response, http.StatusCreated)

	var login loginResponse
	decodeJSON(t, response, &login)
	if login.Token == "" {
		t.Fatal("expected token from setup")
	}
	return login.Token
}

func assertStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func errorMessage(t *testing.T, response *http.Response) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	decodeJSON(t, response, &payload)
	return payload.Error
}
