package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"atlas/internal/logger"
)

// Logger logs each HTTP request through the process logger.
func Logger() fiber.Handler {
	return requestLogger(logger.WithComponent("http"), time.Local)
}

// LoggerWithWriter logs each HTTP request as one JSON line to w, stamping
// ts in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return requestLogger(zerolog.New(w).With().Str("component", "http").Logger(), loc)
}

func requestLogger(log zerolog.Logger, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.Local
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("ts", time.Now().In(loc).Format(time.RFC3339Nano)).
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("request")

		return err
	}
}
