package courseValidator

import (
	"strconv"

	"nexora/middleware"
	"nexora/validators"

	"github.com/gofiber/fiber/v2"
)

// CatalogQuery are the public catalog list filters
type CatalogQuery struct {
	Category string `query:"category"`
	Level    string `query:"level" validate:"omitempty,oneof=all beginner intermediate advanced"`
	Search   string `query:"search"`
	Sort     string `query:"sort" validate:"omitempty,oneof=created_at price rating_average enrollment_count"`
	Order    string `query:"order" validate:"omitempty,oneof=asc desc"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

func CatalogList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CatalogQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		// Defaults
		if reqData.Sort == "" {
			reqData.Sort = "created_at"
		}
		if reqData.Order == "" {
			reqData.Order = "desc"
		}
		if reqData.Page == 0 {
			reqData.Page = 1
		}
		if reqData.Limit == 0 {
			reqData.Limit = 12
		}

		c.Locals("validatedCatalog", reqData)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "id", "courseID") {
			return nil
		}
		return c.Next()
	}
}

// CourseRequest is the create/update payload for courses
type CourseRequest struct {
	Title            string  `json:"title" validate:"required,max=100"`
	ShortDescription string  `json:"short_description" validate:"required,max=200"`
	Description      string  `json:"description" validate:"required"`
	Category         string  `json:"category" validate:"required"`
	Level            string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Price            float64 `json:"price" validate:"min=0"`
	ThumbnailURL     string  `json:"thumbnail_url" validate:"omitempty,url"`
	PreviewVideoURL  string  `json:"preview_video_url" validate:"omitempty,url"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseUpdateRequest allows partial updates; empty fields are left alone
type CourseUpdateRequest struct {
	Title            string   `json:"title" validate:"omitempty,max=100"`
	ShortDescription string   `json:"short_description" validate:"omitempty,max=200"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Level            string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price            *float64 `json:"price" validate:"omitempty,min=0"`
	ThumbnailURL     string   `json:"thumbnail_url" validate:"omitempty,url"`
	PreviewVideoURL  string   `json:"preview_video_url" validate:"omitempty,url"`
	IsPublished      *bool    `json:"is_published"`
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "id", "courseID") {
			return nil
		}

		reqData := new(CourseUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// SectionRequest creates or renames a section
type SectionRequest struct {
	Title      string `json:"title" validate:"required"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "id", "courseID") {
			return nil
		}

		reqData := new(SectionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// LessonRequest creates or updates a lesson inside a section
type LessonRequest struct {
	SectionID   uint   `json:"section_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	Duration    int    `json:"duration" validate:"min=0"`
	OrderIndex  int    `json:"order_index" validate:"min=0"`
	IsPreview   bool   `json:"is_preview"`
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "id", "courseID") {
			return nil
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "id", "courseID") {
			return nil
		}
		if !validators.ParseIDParam(c, "lessonId", "lessonID") {
			return nil
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// Pagination is the shared page/limit query validator
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Page must be greater than 0!", nil)
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil || limit < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Limit must be greater than 0!", nil)
		}

		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}
