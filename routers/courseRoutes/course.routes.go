package courseRoutes

import (
	controllers "nexora/controllers/course"
	"nexora/middleware"
	validators "nexora/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog and student-facing routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalog
	courseGroup.Get("/list", validators.CatalogList(), controllers.ListCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourse)

	// Enrollment
	courseGroup.Post("/:courseId/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Progress tracking
	courseGroup.Post("/:courseId/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateProgress)
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.GetProgress(), controllers.GetProgress)
	courseGroup.Get("/:courseId/lessons", middleware.JWTMiddleware, validators.GetProgress(), controllers.GetLessonAccessibility)
	courseGroup.Get("/:courseId/resources", middleware.JWTMiddleware, validators.CourseResources(), controllers.ListCourseResources)

	// Certificate request
	courseGroup.Post("/:courseId/certificate/request", middleware.JWTMiddleware, validators.RequestCertificate(), controllers.RequestCertificate)

	// Quiz
	courseGroup.Get("/:courseId/quiz", middleware.JWTMiddleware, validators.GetCourseQuiz(), controllers.GetCourseQuiz)

	quizGroup := app.Group("/quiz")
	quizGroup.Post("/:quizId/submit", middleware.JWTMiddleware, validators.SubmitAttempt(), controllers.SubmitAttempt)
	quizGroup.Get("/:quizId/attempts", middleware.JWTMiddleware, validators.QuizID(), controllers.GetMyAttempts)

	// User enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetMyCourses)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
