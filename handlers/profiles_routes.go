// handlers/profiles_routes.go
package handlers

import (
	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupProfileRoutes wires the self-service profile endpoints and the admin
// user management surface.
func SetupProfileRoutes(app *fiber.App, profiles *services.ProfileService) {
	secured := app.Group("/profile", middleware.UserContextMiddleware())

	secured.Get("/me", func(c *fiber.Ctx) error {
		profile, err := profiles.Get(middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(profile)
	})

	secured.Put("/me", func(c *fiber.Ctx) error {
		var upd services.ProfileUpdate
		if err := c.BodyParser(&upd); err != nil {
			return badRequest(c, "invalid request body")
		}
		profile, err := profiles.Update(middleware.UserID(c), upd)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(profile)
	})

	secured.Post("/push-token", func(c *fiber.Ctx) error {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := profiles.RegisterPushToken(middleware.UserID(c), req.Token); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "push token registered"})
	})

	admin := app.Group("/admin/users", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Get("/", func(c *fiber.Ctx) error {
		results, err := profiles.Search(c.Query("q"), c.QueryInt("limit", 50))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(results)
	})

	admin.Put("/:id/role", func(c *fiber.Ctx) error {
		userID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid user ID")
		}
		var req struct {
			Role models.UserRole `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := profiles.SetRole(userID, req.Role); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "role updated", "user_id": userID, "role": req.Role})
	})

	// Full account deletion cascades every owned record, ledger included.
	admin.Delete("/:id", func(c *fiber.Ctx) error {
		userID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid user ID")
		}
		if err := profiles.Delete(userID); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "account deleted"})
	})
}
