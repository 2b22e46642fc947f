package controllers

import (
	"errors"

	middleware "rush-server/middlewares"
	service "rush-server/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type AuthController struct {
	auth    *service.AuthService
	enabled bool
	logger  zerolog.Logger
}

func NewAuthController(auth *service.AuthService, enabled bool, logger zerolog.Logger) *AuthController {
	return &AuthController{auth: auth, enabled: enabled, logger: logger}
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	if !ac.enabled {
		return respondError(c, ac.logger, fiber.StatusServiceUnavailable, "Sign-in is not configured", nil)
	}
	url, err := ac.auth.LoginURL(c.UserContext())
	if err != nil {
		return respondError(c, ac.logger, fiber.StatusInternalServerError, "Failed to start sign-in", err)
	}
	return c.Redirect(url, fiber.StatusFound)
}

func (ac *AuthController) Callback(c *fiber.Ctx) error {
	if providerErr := c.Query("error"); providerErr != "" {
		return respondError(c, ac.logger, fiber.StatusUnauthorized, "Sign-in was cancelled", errors.New(providerErr))
	}

	user, token, err := ac.auth.Complete(c.UserContext(), c.Query("state"), c.Query("code"))
	if errors.Is(err, service.ErrInvalidState) {
		return respondError(c, ac.logger, fiber.StatusUnauthorized, "Not authenticated", err)
	}
	if err != nil {
		return respondError(c, ac.logger, fiber.StatusInternalServerError, "Failed to complete sign-in", err)
	}

	middleware.SetSessionCookie(c, token, ac.auth.SessionTTL())
	ac.logger.Info().Str("user", user.ID).Msg("signed in")
	return c.Redirect("/", fiber.StatusFound)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	middleware.ClearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
