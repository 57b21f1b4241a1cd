package contactRoutes

import (
	contactControllers "nexora/controllers/contact"
	"nexora/middleware"
	contactValidators "nexora/validators/contact"
	courseValidators "nexora/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupContactRoutes(app *fiber.App) {
	contactGroup := app.Group("/contact")

	contactGroup.Post("/", contactValidators.CreateMessage(), contactControllers.CreateMessage)

	adminOnly := middleware.RequireRole("ADMIN")
	adminGroup := app.Group("/admin/contact")
	adminGroup.Get("/list", middleware.JWTMiddleware, adminOnly, courseValidators.Pagination(), contactControllers.ListMessages)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, contactValidators.MessageID(), contactControllers.DeleteMessage)
}
