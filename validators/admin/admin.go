package adminValidator

import (
	"nexora/validators"

	"github.com/gofiber/fiber/v2"
)

func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "id", "targetUserID") {
			return nil
		}
		return c.Next()
	}
}
