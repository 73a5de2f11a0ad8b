package logger

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FiberMiddleware writes one access log line per request. It must run after
// the requestid middleware so the request identifier is available.
func FiberMiddleware(l *Logger) fiber.Handler {
	if l == nil {
		l = GetLogger()
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		zl := l.Zerolog()
		evt := zl.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = zl.Error()
		case status >= fiber.StatusBadRequest:
			evt = zl.Warn()
		}

		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("ip", c.IP()).
			Msg("request handled")

		return err
	}
}
