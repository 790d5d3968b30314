// handlers/news_routes.go
package handlers

import (
	"strconv"

	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"
	"membership-platform/workers"

	"github.com/gofiber/fiber/v2"
)

// SetupNewsRoutes wires the news feed, admin authoring and the on-demand
// WordPress sync trigger.
func SetupNewsRoutes(app *fiber.App, news *services.NewsService, syncWorker *workers.NewsSyncWorker) {
	secured := app.Group("/news", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "30"))
		items, err := news.ListPublished(limit)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	})

	admin := app.Group("/admin/news", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Post("/", func(c *fiber.Ctx) error {
		var item models.NewsItem
		if err := c.BodyParser(&item); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := news.Create(&item); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	admin.Put("/:id", func(c *fiber.Ctx) error {
		itemID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid news item ID")
		}
		item, err := news.Get(itemID)
		if err != nil {
			return serviceError(c, err)
		}
		if err := c.BodyParser(item); err != nil {
			return badRequest(c, "invalid request body")
		}
		item.ID = itemID
		if err := news.Update(item); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(item)
	})

	admin.Delete("/:id", func(c *fiber.Ctx) error {
		itemID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid news item ID")
		}
		if err := news.Delete(itemID); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "news item deleted"})
	})

	admin.Post("/sync", func(c *fiber.Ctx) error {
		synced, err := syncWorker.SyncOnce(c.Context())
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "wordpress sync failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"synced": synced})
	})
}
