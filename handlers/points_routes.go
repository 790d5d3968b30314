// handlers/points_routes.go
package handlers

import (
	"strconv"

	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SetupPointsRoutes wires the points history endpoint and the admin manual
// grant.
func SetupPointsRoutes(app *fiber.App, ledger *services.LedgerService) {
	secured := app.Group("/points", middleware.UserContextMiddleware())

	secured.Get("/log", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		entries, err := ledger.UserLog(middleware.UserID(c), limit)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(entries)
	})

	admin := app.Group("/admin/points", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Post("/grant", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
			Points int    `json:"points"`
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if _, err := uuid.Parse(req.UserID); err != nil {
			return badRequest(c, "invalid user ID")
		}
		if req.Points <= 0 {
			return badRequest(c, "points must be positive")
		}
		if req.Reason == "" {
			req.Reason = "Manual grant"
		}
		newTotal, err := ledger.AwardPoints(req.UserID, req.Points, req.Reason,
			&services.SourceRef{Type: models.PointsSourceAdmin})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":   "points granted",
			"user_id":   req.UserID,
			"points":    req.Points,
			"new_total": newTotal,
		})
	})
}
