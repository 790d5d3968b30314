// handlers/academy_routes.go
package handlers

import (
	"strconv"

	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAcademyRoutes wires the course catalog, module completion and quiz
// submission endpoints.
func SetupAcademyRoutes(app *fiber.App, catalog *services.CatalogService, progress *services.ProgressService) {
	secured := app.Group("/academy", middleware.UserContextMiddleware())

	secured.Get("/courses", func(c *fiber.Ctx) error {
		courses, err := catalog.ListPublished(middleware.Role(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(courses)
	})

	secured.Get("/courses/:id", func(c *fiber.Ctx) error {
		courseID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid course ID")
		}
		course, err := catalog.GetCourse(courseID)
		if err != nil {
			return serviceError(c, err)
		}
		prog, err := progress.GetProgress(middleware.UserID(c), courseID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"course":   course,
			"progress": prog, // null until the course is started
		})
	})

	secured.Get("/modules/:id/quiz", func(c *fiber.Ctx) error {
		moduleID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid module ID")
		}
		quiz, err := catalog.QuizForModule(moduleID)
		if err != nil {
			return serviceError(c, err)
		}
		if quiz == nil {
			return c.JSON(fiber.Map{"quiz": nil})
		}
		// The correct answer never leaves the server before submission.
		return c.JSON(fiber.Map{"quiz": fiber.Map{
			"id":            quiz.ID,
			"module_id":     quiz.ModuleID,
			"question":      quiz.Question,
			"options":       quiz.Options,
			"points_reward": quiz.PointsReward,
		}})
	})

	secured.Post("/courses/:id/modules/:index/complete", func(c *fiber.Ctx) error {
		courseID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid course ID")
		}
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return badRequest(c, "invalid module index")
		}
		result, err := progress.CompleteModule(middleware.UserID(c), courseID, index)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(result)
	})

	secured.Post("/courses/:id/quizzes/:quizId/submit", func(c *fiber.Ctx) error {
		courseID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid course ID")
		}
		quizID, ok := requireUUID(c, "quizId")
		if !ok {
			return badRequest(c, "invalid quiz ID")
		}
		var req struct {
			AnswerIndex *int `json:"answer_index"`
		}
		if err := c.BodyParser(&req); err != nil || req.AnswerIndex == nil {
			return badRequest(c, "answer_index is required")
		}
		result, err := progress.SubmitQuiz(middleware.UserID(c), courseID, quizID, *req.AnswerIndex)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(result)
	})

	secured.Get("/progress", func(c *fiber.Ctx) error {
		rows, err := progress.ListProgress(middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(rows)
	})

	// Admin catalog management
	admin := app.Group("/admin/academy", middleware.UserContextMiddleware(), middleware.RequireRole(models.RoleStaff))

	admin.Post("/courses", func(c *fiber.Ctx) error {
		var course models.Course
		if err := c.BodyParser(&course); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := catalog.CreateCourse(&course); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(course)
	})

	admin.Put("/courses/:id", func(c *fiber.Ctx) error {
		courseID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid course ID")
		}
		course, err := catalog.GetCourse(courseID)
		if err != nil {
			return serviceError(c, err)
		}
		if err := c.BodyParser(course); err != nil {
			return badRequest(c, "invalid request body")
		}
		course.ID = courseID
		if err := catalog.UpdateCourse(course); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(course)
	})

	admin.Post("/modules", func(c *fiber.Ctx) error {
		var module models.Module
		if err := c.BodyParser(&module); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := catalog.CreateModule(&module); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(module)
	})

	admin.Delete("/modules/:id", func(c *fiber.Ctx) error {
		moduleID, ok := requireUUID(c, "id")
		if !ok {
			return badRequest(c, "invalid module ID")
		}
		if err := catalog.DeleteModule(moduleID); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "module deleted"})
	})

	admin.Put("/quizzes", func(c *fiber.Ctx) error {
		var quiz models.Quiz
		if err := c.BodyParser(&quiz); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := catalog.UpsertQuiz(&quiz); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(quiz)
	})
}
