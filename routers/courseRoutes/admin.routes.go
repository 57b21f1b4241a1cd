package courseRoutes

import (
	controllers "nexora/controllers/course"
	"nexora/middleware"
	validators "nexora/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course management for instructors and admins
func SetupAdminCourseRoutes(app *fiber.App) {
	manage := middleware.RequireRole("ADMIN", "INSTRUCTOR")

	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, manage, validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, manage, validators.UpdateCourse(), controllers.UpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, manage, validators.CourseID(), controllers.DeleteCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, manage, controllers.InstructorCourses)

	// Structure management
	adminGroup.Post("/:id/section", middleware.JWTMiddleware, manage, validators.CreateSection(), controllers.CreateSection)
	adminGroup.Post("/:id/lesson", middleware.JWTMiddleware, manage, validators.CreateLesson(), controllers.CreateLesson)
	adminGroup.Put("/:id/lesson/:lessonId", middleware.JWTMiddleware, manage, validators.UpdateLesson(), controllers.UpdateLesson)

	// Quiz management
	adminGroup.Post("/:courseId/quiz", middleware.JWTMiddleware, manage, validators.CreateQuiz(), controllers.CreateQuiz)

	// Resource management
	adminGroup.Post("/:id/resource", middleware.JWTMiddleware, manage, validators.CreateResource(), controllers.CreateResource)

	resourceGroup := app.Group("/admin/resource")
	resourceGroup.Put("/:resourceId", middleware.JWTMiddleware, manage, validators.UpdateResource(), controllers.UpdateResource)
	resourceGroup.Delete("/:resourceId", middleware.JWTMiddleware, manage, validators.ResourceID(), controllers.DeleteResource)
}
