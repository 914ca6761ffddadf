package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/config"
	"github.com/chenaniah/academy-api/internal/handler"
	"github.com/chenaniah/academy-api/internal/router"
	"github.com/chenaniah/academy-api/internal/service"
)

type memorySettingRepo struct {
	values map[string]string
}

func (m *memorySettingRepo) Get(_ context.Context, key string) (string, error) {
	if value, ok := m.values[key]; ok {
		return value, nil
	}
	return "", gorm.ErrRecordNotFound
}

func (m *memorySettingRepo) Set(_ context.Context, key, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func setupRegistrationApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := zerolog.New(io.Discard)
	settingsService := service.NewSettingsService(&memorySettingRepo{}, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		RegistrationHandler: handler.NewRegistrationHandler(settingsService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", uint(1))
			c.Locals("user_role", service.RoleAdmin)
			return c.Next()
		},
	})

	return app
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type registrationEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		RegistrationOpen bool `json:"registration_open"`
	} `json:"data"`
}

func TestRegistrationStatusDefaultsOpen(t *testing.T) {
	app := setupRegistrationApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/registration/status", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body registrationEnvelope
	decodeBody(t, resp, &body)
	require.True(t, body.Success)
	require.True(t, body.Data.RegistrationOpen)
}

func TestRegistrationToggle(t *testing.T) {
	app := setupRegistrationApp(t)

	req := httptest.NewRequest("PUT", "/api/registration/status",
		bytes.NewBufferString(`{"registration_open": false}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body registrationEnvelope
	decodeBody(t, resp, &body)
	require.Equal(t, "Registration closed successfully", body.Message)
	require.False(t, body.Data.RegistrationOpen)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/registration/status", nil))
	require.NoError(t, err)
	decodeBody(t, resp, &body)
	require.False(t, body.Data.RegistrationOpen)

	// An empty body reopens registration.
	req = httptest.NewRequest("PUT", "/api/registration/status", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	decodeBody(t, resp, &body)
	require.Equal(t, "Registration opened successfully", body.Message)
	require.True(t, body.Data.RegistrationOpen)
}

func TestRegistrationToggleRequiresAdmin(t *testing.T) {
	logger := zerolog.New(io.Discard)
	settingsService := service.NewSettingsService(&memorySettingRepo{}, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		RegistrationHandler: handler.NewRegistrationHandler(settingsService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", uint(2))
			c.Locals("user_role", service.RoleStudent)
			return c.Next()
		},
	})

	req := httptest.NewRequest("PUT", "/api/registration/status",
		bytes.NewBufferString(`{"registration_open": false}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
