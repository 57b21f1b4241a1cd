package authRoutes

import (
	authControllers "nexora/controllers/auth"
	"nexora/middleware"
	authValidators "nexora/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/verify/email", authValidators.VerifyEmail(), authControllers.VerifyEmail)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)

	userGroup := app.Group("/user")
	userGroup.Get("/profile", middleware.JWTMiddleware, authControllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, authValidators.UpdateProfile(), authControllers.UpdateProfile)
}
