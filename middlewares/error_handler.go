package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type AppError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(statusCode int, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Cause: cause}
}

// ErrorHandler turns any error returned by a handler into a JSON { error } body.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			rid, _ := c.Locals("request_id").(string)
			logger.Error().Err(err).
				Str("rid", rid).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Msg(msg)
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
}

func normalizeError(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode > 0 {
		msg := appErr.Message
		if msg == "" {
			msg = fiber.ErrInternalServerError.Message
		}
		return appErr.StatusCode, msg
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code > 0 {
		return fiberErr.Code, fiberErr.Message
	}
	return fiber.StatusInternalServerError, fiber.ErrInternalServerError.Message
}
