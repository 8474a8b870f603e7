package roomRoutes

import (
	roomController "arena-app/controllers/room"
	"arena-app/middleware"
	roomValidator "arena-app/validators/room"

	"github.com/gofiber/fiber/v2"
)

func SetupRoomRoutes(app *fiber.App) {
	roomGroup := app.Group("/rooms", middleware.JWTMiddleware)

	roomGroup.Get("/", roomController.ListOpenRooms)
	roomGroup.Post("/", roomValidator.CreateRoom(), roomController.CreateRoom)
	roomGroup.Get("/:id", roomController.GetRoom)
	roomGroup.Post("/:id/join", roomController.JoinRoom)
	roomGroup.Post("/:id/ready", roomController.MarkReady)
	roomGroup.Post("/:id/credentials", roomValidator.Credentials(), roomController.SetRoomCredentials)
	roomGroup.Post("/:id/result", roomValidator.Result(), roomController.SubmitResult)
	roomGroup.Post("/:id/cancel", roomController.CancelRoom)

	// Admin routes
	adminGroup := roomGroup.Group("/admin", middleware.RequireRole("ADMIN", "SUPER-ADMIN"))
	adminGroup.Get("/under-review", roomController.ListUnderReview)
	adminGroup.Post("/resolve", roomValidator.Resolve(), roomController.ResolveRoom)
}
