package tournamentValidator

import (
	"arena-app/middleware"
	"arena-app/models"

	"github.com/gofiber/fiber/v2"
)

// CreateTournament validates an admin tournament creation request
func CreateTournament() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.Tournament)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name == "" {
			errors["name"] = "Tournament name is required!"
		}
		if reqData.Game == "" {
			errors["game"] = "Game is required!"
		}
		if reqData.MaxTeams <= 0 {
			errors["maxTeams"] = "Max teams must be greater than 0!"
		}
		if reqData.EntryFee < 0 {
			errors["entryFee"] = "Entry fee cannot be negative!"
		}
		if reqData.RegistrationOpensAt.IsZero() || reqData.RegistrationClosesAt.IsZero() || reqData.StartsAt.IsZero() {
			errors["schedule"] = "Registration window and start time are required!"
		} else if !reqData.RegistrationOpensAt.Before(reqData.RegistrationClosesAt) ||
			reqData.StartsAt.Before(reqData.RegistrationClosesAt) {
			errors["schedule"] = "Schedule must be opens < closes <= starts!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateTournament", reqData)
		return c.Next()
	}
}

// Register validates a team registration request
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TournamentID uint `json:"tournamentId"`
			TeamID       uint `json:"teamId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TournamentID == 0 {
			errors["tournamentId"] = "Tournament ID is required!"
		}
		if reqData.TeamID == 0 {
			errors["teamId"] = "Team ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}
