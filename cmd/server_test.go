package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talencee/careers/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{
			Name:            "careers-test",
			Environment:     "test",
			Port:            "0",
			CORSOrigins:     "*",
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			SQLitePath:  ":memory:",
			AutoMigrate: true,
		},
		Upload: config.UploadConfig{
			Root:        t.TempDir(),
			MaxFileSize: 1 << 20,
			Backend:     config.BackendLocal,
			PublicPath:  "/uploads",
		},
		Mail: config.MailConfig{
			Transport:    config.TransportLog,
			From:         "jobs@talencee.com",
			StaffAddress: "hr@talencee.com",
			CompanyName:  "Talencee",
			Timeout:      time.Second,
		},
		Auth: config.AuthConfig{AdminAPIKey: "secret"},
	}
}

func newTestApp(t *testing.T) (*fiber.App, *Container) {
	t.Helper()
	c, err := NewContainer(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return newApp(c), c
}

func decode(t *testing.T, r io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	body := decode(t, resp.Body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Server is running", body["message"])
	assert.Equal(t, true, body["db"])
	assert.NotContains(t, body, "redis")
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/unknown", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Route not found - /api/unknown", decode(t, resp.Body)["message"])
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "careers_notifications_in_flight")
}

func TestSubmitThenDownloadResume(t *testing.T) {
	app, c := newTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"name":    "Test User",
		"email":   "test@example.com",
		"subject": "Test Subject",
		"message": "Test message with enough characters",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="resume"; filename="cv.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4 resume"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/applications", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NoError(t, c.Dispatcher.Wait(context.Background()))

	var stored string
	require.NoError(t, c.DB.Get(&stored, `SELECT resume_path FROM applications`))

	rel := stored[len(c.LocalUploadRoot()):]
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/uploads"+rel, nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-1.4 resume", string(body))
}

func TestContentRequiresAPIKey(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPut, "/api/content", bytes.NewBufferString(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
