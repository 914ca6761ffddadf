package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit throttles a route group. Authenticated requests are keyed by
// user id so one noisy client cannot exhaust the budget of a shared NAT;
// anonymous requests fall back to the caller's IP.
func RateLimit(name string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return fmt.Sprintf("%s:%s", name, clientKey(c))
		},
	})
}

func clientKey(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(uint); ok && id != 0 {
		return fmt.Sprintf("user-%d", id)
	}

	return c.IP()
}
