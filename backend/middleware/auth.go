package middleware

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mektycoon/mekgold/backend/utils"
)

// AdminRequired guards admin routes with a static bearer token. An empty
// token disables the admin surface entirely.
func AdminRequired(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return utils.SendForbidden(c, "Admin API is disabled")
		}

		auth := c.Get(fiber.HeaderAuthorization)
		presented, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || presented == "" {
			return utils.SendUnauthorized(c, "Missing bearer token")
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			slog.Warn("Admin required: invalid token",
				slog.String("type", "http"),
				slog.String("path", c.Path()),
				slog.String("ip", utils.GetIPAddress(c)))
			return utils.SendForbidden(c, "Admin access required")
		}

		return c.Next()
	}
}
