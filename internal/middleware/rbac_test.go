package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func roleApp(role interface{}, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", func(c *fiber.Ctx) error {
		if role != nil {
			c.Locals("user_role", role)
		}
		return c.Next()
	}, guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		role   interface{}
		status int
	}{
		{"allowed role", "admin", fiber.StatusOK},
		{"allowed with casing", " Admin ", fiber.StatusOK},
		{"second allowed role", "coordinator", fiber.StatusOK},
		{"denied role", "student", fiber.StatusForbidden},
		{"no role", nil, fiber.StatusForbidden},
	}

	guard := RequireRole("admin", "coordinator")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := roleApp(tc.role, guard)
			resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
