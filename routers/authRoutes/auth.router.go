package authRoutes

import (
	authController "arena-app/controllers/auth"
	"arena-app/middleware"
	authValidator "arena-app/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authController.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	authGroup.Put("/profile", middleware.JWTMiddleware, authController.UpdateProfile)
}
