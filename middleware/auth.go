package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"water-monitor-system/logger"
)

// UserContextMiddleware resolves the caller's identity from the gateway
// headers and attaches it to the request context. It is the service's only
// identity provider: handlers read user_id/username from c.Locals and pass
// them down; an empty user_id means "not signed in", which the data layer
// turns into demo-mode or ErrNotAuthenticated as appropriate.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		username := strings.TrimSpace(c.Get("X-User-Name"))
		if username == "" && userID != "" {
			// Fall back to the email local part, the way the UI names people.
			if email := c.Get("X-User-Email"); email != "" {
				username = strings.SplitN(email, "@", 2)[0]
			}
		}

		c.Locals("user_id", userID)
		c.Locals("username", username)

		logger.Debug().Str("user_id", userID).Str("path", c.Path()).Msg("resolved user context")
		return c.Next()
	}
}

// RequireUser guards the few routes that make no sense anonymously even in
// demo mode.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, _ := c.Locals("user_id").(string); uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID, request must come through the gateway with auth context",
			})
		}
		return c.Next()
	}
}
