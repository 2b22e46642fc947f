package controllers

import (
	middleware "rush-server/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// respondError hands the failure to the app's error handler, which writes { "error": msg }.
// Client errors are logged here; server errors are logged by the error handler with their cause.
func respondError(c *fiber.Ctx, logger zerolog.Logger, status int, msg string, err error) error {
	if status < fiber.StatusInternalServerError {
		logger.Warn().Err(err).
			Str("rid", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg(msg)
	}
	return middleware.NewAppError(status, msg, err)
}

func requestID(c *fiber.Ctx) string {
	rid, _ := c.Locals("request_id").(string)
	return rid
}
