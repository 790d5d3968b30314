// middleware/user_context.go
package middleware

import (
	"log"

	"membership-platform/models"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the authenticated user identity set by the
// Gateway after it validated the session with the identity provider. The
// service trusts these headers as-is; nothing here re-checks credentials.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		role := models.UserRole(c.Get("X-User-Role"))
		if role == "" {
			role = models.RoleRegistered
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", role)

		return c.Next()
	}
}

// RequireRole guards a route group behind a minimum position on the role
// ladder. Must run after UserContextMiddleware.
func RequireRole(min models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(models.UserRole)
		if !role.AtLeast(min) {
			log.Printf("🚫 [USER_CTX] role %q below required %q for %s", role, min, c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient role",
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated user ID attached by UserContextMiddleware.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// Role returns the authenticated user's role.
func Role(c *fiber.Ctx) models.UserRole {
	role, _ := c.Locals("user_role").(models.UserRole)
	return role
}
