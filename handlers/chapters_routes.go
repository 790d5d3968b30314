// handlers/chapters_routes.go
package handlers

import (
	"strconv"

	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupChapterRoutes wires chapter listing, the leaderboard and the admin
// aggregate repair endpoint.
func SetupChapterRoutes(app *fiber.App, chapters *services.ChapterService) {
	secured := app.Group("/chapters", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		active, err := chapters.ListActive()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(active)
	})

	secured.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "25"))
		top, err := chapters.Leaderboard(limit)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(top)
	})

	secured.Get("/:id", func(c *fiber.Ctx) error {
		chapterID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid chapter ID")
		}
		chapter, err := chapters.Get(chapterID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(chapter)
	})

	admin := app.Group("/admin/chapters", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Post("/", func(c *fiber.Ctx) error {
		var chapter models.Chapter
		if err := c.BodyParser(&chapter); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := chapters.Create(&chapter); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(chapter)
	})

	admin.Put("/:id", func(c *fiber.Ctx) error {
		chapterID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid chapter ID")
		}
		chapter, err := chapters.Get(chapterID)
		if err != nil {
			return serviceError(c, err)
		}
		if err := c.BodyParser(chapter); err != nil {
			return badRequest(c, "invalid request body")
		}
		chapter.ID = chapterID
		if err := chapters.Update(chapter); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(chapter)
	})

	admin.Post("/recompute-totals", func(c *fiber.Ctx) error {
		if err := chapters.RecomputeTotals(); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "chapter totals recomputed"})
	})
}
