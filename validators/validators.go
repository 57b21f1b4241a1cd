package validators

import (
	"strconv"
	"strings"

	"nexora/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validate is the shared validator instance for request bodies
var Validate = validator.New()

// FieldErrors converts validator errors into a field -> message map for
// ValidationErrorResponse.
func FieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[strings.ToLower(fe.Field())] = "failed on '" + fe.Tag() + "' validation"
		}
		return errors
	}
	errors["body"] = err.Error()
	return errors
}

// ParseIDParam validates a positive integer route parameter and stores it in
// c.Locals under localKey. Returns false after writing the error response.
func ParseIDParam(c *fiber.Ctx, param, localKey string) bool {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, param+" is required!", nil)
		return false
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
		return false
	}

	c.Locals(localKey, uint(id))
	return true
}
