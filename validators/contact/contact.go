package contactValidator

import (
	"nexora/middleware"
	"nexora/validators"

	"github.com/gofiber/fiber/v2"
)

// MessageRequest is the public contact form payload
type MessageRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
}

func MessageID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "id", "messageID") {
			return nil
		}
		return c.Next()
	}
}

func CreateMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MessageRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedMessage", reqData)
		return c.Next()
	}
}
