// handlers/notifications_routes.go
package handlers

import (
	"strconv"

	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes wires the in-app inbox and the admin broadcast
// endpoint (in-app rows + Expo push fan-out).
func SetupNotificationRoutes(app *fiber.App, notifications *services.NotificationService) {
	secured := app.Group("/notifications", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		rows, err := notifications.ListForUser(middleware.UserID(c), limit)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(rows)
	})

	secured.Post("/:id/read", func(c *fiber.Ctx) error {
		notificationID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid notification ID")
		}
		if err := notifications.MarkRead(middleware.UserID(c), notificationID); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "OK"})
	})

	secured.Post("/read-all", func(c *fiber.Ctx) error {
		marked, err := notifications.MarkAllRead(middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "OK", "marked_count": marked})
	})

	admin := app.Group("/admin/notifications", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Post("/broadcast", func(c *fiber.Ctx) error {
		var req struct {
			Title      string                  `json:"title"`
			Body       string                  `json:"body"`
			Type       models.NotificationType `json:"type"`
			TargetRole string                  `json:"target_role"`
			ActionURL  string                  `json:"action_url"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		inApp, pushed, err := notifications.Broadcast(req.Title, req.Body, req.Type, req.TargetRole, req.ActionURL)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"in_app": inApp,
			"pushed": pushed,
		})
	})
}
