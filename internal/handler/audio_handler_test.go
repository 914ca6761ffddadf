package handler_test

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/chenaniah/academy-api/internal/config"
	"github.com/chenaniah/academy-api/internal/handler"
	"github.com/chenaniah/academy-api/internal/router"
	"github.com/chenaniah/academy-api/internal/service"
)

func setupAudioApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	dir := t.TempDir()
	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		AudioHandler: handler.NewAudioHandler(dir, zerolog.New(io.Discard)),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", uint(1))
			c.Locals("user_role", service.RoleStudent)
			return c.Next()
		},
	})

	return app, dir
}

func writeAudioFile(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func TestAudioServesNestedFile(t *testing.T) {
	app, dir := setupAudioApp(t)
	writeAudioFile(t, dir, "lessons/scales.mp3", []byte("mp3-bytes"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/audio/lessons/scales.mp3", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "audio/mpeg", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "mp3-bytes", string(body))
}

func TestAudioContentTypeByExtension(t *testing.T) {
	app, dir := setupAudioApp(t)
	writeAudioFile(t, dir, "hymn.wav", []byte("wav-bytes"))
	writeAudioFile(t, dir, "chant.oga", []byte("ogg-bytes"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/audio/hymn.wav", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "audio/wav", resp.Header.Get(fiber.HeaderContentType))

	resp, err = app.Test(httptest.NewRequest("GET", "/api/audio/chant.oga", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "audio/ogg", resp.Header.Get(fiber.HeaderContentType))
}

func TestAudioMissingFile(t *testing.T) {
	app, _ := setupAudioApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/audio/missing.mp3", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAudioRejectsPathTraversal(t *testing.T) {
	app, dir := setupAudioApp(t)
	writeAudioFile(t, filepath.Dir(dir), "outside.mp3", []byte("secret"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/audio/..%2foutside.mp3", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
