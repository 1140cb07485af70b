package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Unknownlegend09/ff-tournament/internal/auth"
	"github.com/Unknownlegend09/ff-tournament/internal/models"
	"github.com/Unknownlegend09/ff-tournament/internal/utils"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// RequireAuth rejects requests without a valid bearer token (401) and
// stores the verified identity in ctx locals for downstream handlers.
func RequireAuth(tm *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}
		claims, err := tm.Verify(parts[1])
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole rejects verified requests whose role does not match (403).
// It must run after RequireAuth.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got, ok := c.Locals(LocalRole).(models.Role)
		if !ok || got != role {
			return utils.JSONError(c, fiber.StatusForbidden, "insufficient privileges")
		}
		return c.Next()
	}
}

// UserID returns the caller id set by RequireAuth.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
