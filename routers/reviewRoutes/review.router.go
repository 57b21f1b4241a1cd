package reviewRoutes

import (
	reviewControllers "nexora/controllers/review"
	"nexora/middleware"
	reviewValidators "nexora/validators/review"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/review")

	reviewGroup.Post("/create", middleware.JWTMiddleware, reviewValidators.CreateReview(), reviewControllers.CreateReview)
	reviewGroup.Get("/course/:courseId", reviewValidators.CourseReviews(), reviewControllers.CourseReviews)
}
