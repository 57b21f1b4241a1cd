package main

import (
	"log"

	"nexora/config"
	"nexora/database"
	adminRoutes "nexora/routers/adminRoutes"
	authRoutes "nexora/routers/authRoutes"
	contactRoutes "nexora/routers/contactRoutes"
	couponRoutes "nexora/routers/couponRoutes"
	courseRoutes "nexora/routers/courseRoutes"
	paymentRoutes "nexora/routers/paymentRoutes"
	reviewRoutes "nexora/routers/reviewRoutes"
	"nexora/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve generated certificate PDFs
	app.Static("/certificates", config.AppConfig.CertificateDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	couponRoutes.SetupCouponRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	contactRoutes.SetupContactRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.StartSchedulers()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
