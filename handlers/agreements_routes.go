// handlers/agreements_routes.go
package handlers

import (
	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAgreementRoutes wires the ambassador agreement flow unlocked by
// completing the onboarding course.
func SetupAgreementRoutes(app *fiber.App, agreements *services.AgreementService) {
	secured := app.Group("/agreements", middleware.UserContextMiddleware())

	secured.Get("/me", func(c *fiber.Ctx) error {
		agreement, err := agreements.ForUser(middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"agreement": agreement}) // null when unsigned
	})

	secured.Post("/sign", func(c *fiber.Ctx) error {
		var req struct {
			Commitments []string `json:"commitments"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		agreement, err := agreements.Sign(middleware.UserID(c), req.Commitments)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(agreement)
	})

	admin := app.Group("/admin/agreements", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Get("/pending", func(c *fiber.Ctx) error {
		pending, err := agreements.ListPending()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(pending)
	})

	admin.Post("/:id/review", func(c *fiber.Ctx) error {
		agreementID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid agreement ID")
		}
		var req struct {
			Approve bool `json:"approve"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		agreement, err := agreements.Review(agreementID, middleware.UserID(c), req.Approve)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(agreement)
	})
}
