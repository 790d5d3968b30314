// handlers/alerts_routes.go
package handlers

import (
	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAlertRoutes wires action alerts and the exactly-once respond flow.
func SetupAlertRoutes(app *fiber.App, alerts *services.AlertService) {
	secured := app.Group("/alerts", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		active, err := alerts.ListActive()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(active)
	})

	secured.Get("/:id", func(c *fiber.Ctx) error {
		alertID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid alert ID")
		}
		alert, responded, err := alerts.Get(alertID, middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"alert":         alert,
			"has_responded": responded,
		})
	})

	// A duplicate respond is a success with awarded=false, never a user-visible
	// error — the client treats both shapes as "you're done here".
	secured.Post("/:id/respond", func(c *fiber.Ctx) error {
		alertID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid alert ID")
		}
		result, err := alerts.Respond(middleware.UserID(c), alertID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(result)
	})

	admin := app.Group("/admin/alerts", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Post("/", func(c *fiber.Ctx) error {
		var alert models.ActionAlert
		if err := c.BodyParser(&alert); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := alerts.Create(&alert); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(alert)
	})

	admin.Put("/:id", func(c *fiber.Ctx) error {
		alertID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid alert ID")
		}
		alert, _, err := alerts.Get(alertID, middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		if err := c.BodyParser(alert); err != nil {
			return badRequest(c, "invalid request body")
		}
		alert.ID = alertID
		if err := alerts.Update(alert); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(alert)
	})

	admin.Post("/:id/deactivate", func(c *fiber.Ctx) error {
		alertID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid alert ID")
		}
		if err := alerts.Deactivate(alertID); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "alert deactivated"})
	})
}
