package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/observability"
)

var latencyBuckets = []struct {
	limit time.Duration
	label string
}{
	{25 * time.Millisecond, "<=25ms"},
	{50 * time.Millisecond, "<=50ms"},
	{100 * time.Millisecond, "<=100ms"},
	{250 * time.Millisecond, "<=250ms"},
	{500 * time.Millisecond, "<=500ms"},
}

// Observability records Prometheus request metrics and emits one structured
// log line per /api request, correlated via the request's correlation ID.
func Observability(logger zerolog.Logger) fiber.Handler {
	observability.RegisterMetrics()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		if !strings.HasPrefix(c.Path(), "/api") {
			return err
		}

		elapsed := time.Since(start)
		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		method := c.Method()
		status := c.Response().StatusCode()
		code := strconv.Itoa(status)

		observability.Requests().WithLabelValues(method, route, code).Inc()
		observability.Latency().WithLabelValues(method, route).Observe(elapsed.Seconds())
		if status >= fiber.StatusBadRequest {
			observability.Errors().WithLabelValues(method, route, code).Inc()
		}

		event := logger.Info()
		message := "request completed"
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logger.Error()
			message = "request failed"
		case status >= fiber.StatusBadRequest:
			event = logger.Warn()
			message = "request completed with client error"
		}

		event.
			Str("correlation_id", GetCorrelationID(c)).
			Str("route", route).
			Str("method", method).
			Int("status", status).
			Float64("latency_ms", float64(elapsed)/float64(time.Millisecond)).
			Str("latency_bucket", latencyBucket(elapsed)).
			Msg(message)

		return err
	}
}

func latencyBucket(elapsed time.Duration) string {
	for _, bucket := range latencyBuckets {
		if elapsed <= bucket.limit {
			return bucket.label
		}
	}

	return ">500ms"
}
