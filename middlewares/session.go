package middleware

import (
	"strings"
	"time"

	"rush-server/models"
	"rush-server/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookie = "rush_session"
	userLocalsKey = "user"
)

// SessionParser attaches the session user, if any, to the request. It never rejects.
func SessionParser(tokens *utils.SessionTokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			token = bearerToken(c.Get(fiber.HeaderAuthorization))
		}
		if token == "" {
			return c.Next()
		}
		if user, err := tokens.Parse(token); err == nil {
			c.Locals(userLocalsKey, user)
		}
		return c.Next()
	}
}

// RequireSession rejects requests without a session with 401.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentUser(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}
		return c.Next()
	}
}

// RequireSessionPage sends signed-out browsers to the sign-in page.
func RequireSessionPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentUser(c); !ok {
			return c.Redirect("/signin", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) (models.SessionUser, bool) {
	user, ok := c.Locals(userLocalsKey).(models.SessionUser)
	return user, ok && user.ID != ""
}

func SetSessionCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   c.Protocol() == "https",
	})
}

func ClearSessionCookie(c *fiber.Ctx) {
	c.ClearCookie(SessionCookie)
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
