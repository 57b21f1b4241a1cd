package couponValidator

import (
	"nexora/middleware"
	"nexora/validators"

	"github.com/gofiber/fiber/v2"
)

// ValidateRequest checks a coupon against an order
type ValidateRequest struct {
	Code        string  `json:"code" validate:"required"`
	CourseID    uint    `json:"course_id"`
	OrderAmount float64 `json:"order_amount" validate:"min=0"`
}

func ValidateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ValidateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedCouponCheck", reqData)
		return c.Next()
	}
}

// CouponRequest is the admin create payload
type CouponRequest struct {
	Code           string  `json:"code" validate:"required,max=50"`
	Description    string  `json:"description"`
	DiscountType   string  `json:"discount_type" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue  float64 `json:"discount_value" validate:"required,gt=0"`
	MinOrderAmount float64 `json:"min_order_amount" validate:"min=0"`
	MaxUses        *int    `json:"max_uses" validate:"omitempty,min=1"`
	ValidFrom      string  `json:"valid_from" validate:"required"`
	ValidUntil     string  `json:"valid_until" validate:"required"`
	Courses        []uint  `json:"applicable_courses"`
}

func CreateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CouponRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedCoupon", reqData)
		return c.Next()
	}
}

func UseCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "id", "couponID") {
			return nil
		}
		return c.Next()
	}
}
