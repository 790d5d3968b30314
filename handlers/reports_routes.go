// handlers/reports_routes.go
package handlers

import (
	"strconv"

	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupReportRoutes wires activity report submission and listing.
func SetupReportRoutes(app *fiber.App, reports *services.ReportService) {
	secured := app.Group("/reports", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		rows, err := reports.ListForUser(middleware.UserID(c), limit)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(rows)
	})

	secured.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			ReportType  models.ReportType `json:"report_type"`
			ContactName string            `json:"contact_name"`
			Summary     string            `json:"summary"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		report, newTotal, err := reports.Submit(middleware.UserID(c), req.ReportType, req.ContactName, req.Summary)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"report":    report,
			"new_total": newTotal,
		})
	})

	admin := app.Group("/admin/reports", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Get("/", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "100"))
		rows, err := reports.ListAll(limit)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(rows)
	})
}
