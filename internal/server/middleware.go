package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/leftmike/gcpath/internal/logging"
)

// RequestIDLogMiddleware stores a logger carrying the request ID in the user
// context of the request.
func RequestIDLogMiddleware(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := base
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			l = base.With("request_id", rid)
		}
		c.SetUserContext(logging.WithLogger(c.UserContext(), l))
		return c.Next()
	}
}

// AccessLogMiddleware logs HTTP requests with structured slog output.
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		status := c.Response().StatusCode()
		attrs := []slog.Attr{
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.String("latency", time.Since(start).String()),
			slog.Int("bytes_out", len(c.Response().Body())),
		}

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			level = slog.LevelError
		}

		ctx := c.UserContext()
		logging.FromContext(ctx).LogAttrs(ctx, level, fmt.Sprintf("%s %s", method, path), attrs...)
		return err
	}
}
