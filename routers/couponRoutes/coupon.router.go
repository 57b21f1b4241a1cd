package couponRoutes

import (
	couponControllers "nexora/controllers/coupon"
	"nexora/middleware"
	couponValidators "nexora/validators/coupon"

	"github.com/gofiber/fiber/v2"
)

func SetupCouponRoutes(app *fiber.App) {
	couponGroup := app.Group("/coupon")

	couponGroup.Post("/validate", middleware.JWTMiddleware, couponValidators.ValidateCoupon(), couponControllers.ValidateCoupon)
	couponGroup.Post("/:id/use", middleware.JWTMiddleware, couponValidators.UseCoupon(), couponControllers.UseCoupon)

	adminOnly := middleware.RequireRole("ADMIN")
	adminGroup := app.Group("/admin/coupon")
	adminGroup.Post("/create", middleware.JWTMiddleware, adminOnly, couponValidators.CreateCoupon(), couponControllers.CreateCoupon)
	adminGroup.Get("/list", middleware.JWTMiddleware, adminOnly, couponControllers.ListCoupons)
	adminGroup.Patch("/:id/deactivate", middleware.JWTMiddleware, adminOnly, couponValidators.UseCoupon(), couponControllers.DeactivateCoupon)
}
