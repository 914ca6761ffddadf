package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/chenaniah/academy-api/internal/utils"
)

// RequireRole guards a route group so only the listed roles pass.
// Comparison is case-insensitive and tolerant of padded values, since the
// role travels through JWT claims written by more than one client.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := normalizeRole(c.Locals("user_role"))
		if current != "" {
			for _, role := range roles {
				if current == strings.ToLower(strings.TrimSpace(role)) {
					return c.Next()
				}
			}
		}

		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}
}
