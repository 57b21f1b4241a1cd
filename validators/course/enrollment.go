package courseValidator

import (
	"nexora/middleware"
	"nexora/validators"

	"github.com/gofiber/fiber/v2"
)

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "courseId", "courseID") {
			return nil
		}
		return c.Next()
	}
}

// ProgressRequest is the lesson-completion report body
type ProgressRequest struct {
	LessonID  uint `json:"lesson_id" validate:"required"`
	WatchTime int  `json:"watch_time" validate:"min=0"`
}

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "courseId", "courseID") {
			return nil
		}

		reqData := new(ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "courseId", "courseID") {
			return nil
		}
		return c.Next()
	}
}

func RequestCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "courseId", "courseID") {
			return nil
		}
		return c.Next()
	}
}
