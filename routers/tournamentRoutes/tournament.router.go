package tournamentRoutes

import (
	tournamentController "arena-app/controllers/tournament"
	"arena-app/middleware"
	tournamentValidator "arena-app/validators/tournament"

	"github.com/gofiber/fiber/v2"
)

func SetupTournamentRoutes(app *fiber.App) {
	tournamentGroup := app.Group("/tournaments", middleware.JWTMiddleware)

	tournamentGroup.Get("/", tournamentController.ListTournaments)
	tournamentGroup.Get("/:id", tournamentController.GetTournament)
	tournamentGroup.Post("/register", tournamentValidator.Register(), tournamentController.RegisterTeam)

	// Admin routes
	adminGroup := tournamentGroup.Group("/admin", middleware.RequireRole("ADMIN", "SUPER-ADMIN"))
	adminGroup.Post("/", tournamentValidator.CreateTournament(), tournamentController.CreateTournament)
}
