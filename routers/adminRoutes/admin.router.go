package adminRoutes

import (
	adminControllers "nexora/controllers/admin"
	"nexora/middleware"
	adminValidators "nexora/validators/admin"
	courseValidators "nexora/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole("ADMIN")

	adminGroup := app.Group("/admin")
	adminGroup.Get("/dashboard", middleware.JWTMiddleware, adminOnly, adminControllers.Dashboard)
	adminGroup.Get("/user/list", middleware.JWTMiddleware, adminOnly, courseValidators.Pagination(), adminControllers.ListUsers)
	adminGroup.Patch("/user/:id/block", middleware.JWTMiddleware, adminOnly, adminValidators.UserID(), adminControllers.BlockUser)
}
