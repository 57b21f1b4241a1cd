package paymentRoutes

import (
	paymentControllers "nexora/controllers/payment"
	"nexora/middleware"
	paymentValidators "nexora/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/order", middleware.JWTMiddleware, paymentValidators.CreateOrder(), paymentControllers.CreateOrder)
	paymentGroup.Post("/verify", middleware.JWTMiddleware, paymentValidators.VerifyPayment(), paymentControllers.VerifyPayment)
}
