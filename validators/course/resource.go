package courseValidator

import (
	"nexora/middleware"
	"nexora/validators"

	"github.com/gofiber/fiber/v2"
)

// ResourceRequest creates or updates a downloadable course attachment
type ResourceRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	URL       string `json:"url" validate:"required,url"`
	Type      string `json:"type" validate:"required,oneof=pdf slide code other"`
	SectionID *uint  `json:"section_id"`
	LessonID  *uint  `json:"lesson_id"`
}

func CreateResource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "id", "courseID") {
			return nil
		}

		reqData := new(ResourceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedResource", reqData)
		return c.Next()
	}
}

func UpdateResource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "resourceId", "resourceID") {
			return nil
		}

		reqData := new(ResourceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedResource", reqData)
		return c.Next()
	}
}

func ResourceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "resourceId", "resourceID") {
			return nil
		}
		return c.Next()
	}
}

func CourseResources() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "courseId", "courseID") {
			return nil
		}
		return c.Next()
	}
}
