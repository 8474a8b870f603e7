package teamRoutes

import (
	teamController "arena-app/controllers/team"
	"arena-app/middleware"
	teamValidator "arena-app/validators/team"

	"github.com/gofiber/fiber/v2"
)

func SetupTeamRoutes(app *fiber.App) {
	teamGroup := app.Group("/teams", middleware.JWTMiddleware)

	teamGroup.Post("/", teamValidator.CreateTeam(), teamController.CreateTeam)
	teamGroup.Get("/:id", teamController.GetTeam)
	teamGroup.Post("/:id/members", teamValidator.AddMember(), teamController.AddMember)
	teamGroup.Get("/:id/wallet", teamController.GetTeamWallet)
	teamGroup.Post("/:id/money-requests", teamValidator.MoneyRequest(), teamController.RequestMoney)

	requestGroup := app.Group("/money-requests", middleware.JWTMiddleware)
	requestGroup.Get("/", teamController.ListMyMoneyRequests)
	requestGroup.Post("/:id/respond", teamValidator.Respond(), teamController.RespondMoneyRequest)
}
