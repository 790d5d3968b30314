// handlers/menu_routes.go
package handlers

import (
	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupMenuRoutes wires the role-filtered app menu and its admin editor.
func SetupMenuRoutes(app *fiber.App, menu *services.MenuService) {
	secured := app.Group("/menu", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		sections, err := menu.VisibleForRole(middleware.Role(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(sections)
	})

	admin := app.Group("/admin/menu", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Post("/", func(c *fiber.Ctx) error {
		var item models.MenuItem
		if err := c.BodyParser(&item); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := menu.Create(&item); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	admin.Put("/:id", func(c *fiber.Ctx) error {
		itemID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid menu item ID")
		}
		var item models.MenuItem
		if err := c.BodyParser(&item); err != nil {
			return badRequest(c, "invalid request body")
		}
		item.ID = itemID
		if err := menu.Update(&item); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(item)
	})

	admin.Delete("/:id", func(c *fiber.Ctx) error {
		itemID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid menu item ID")
		}
		if err := menu.Delete(itemID); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "menu item deleted"})
	})
}
