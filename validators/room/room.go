package roomValidator

import (
	"arena-app/middleware"
	"arena-app/models"

	"github.com/gofiber/fiber/v2"
)

// CreateRoom validates a room creation request
func CreateRoom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			EntryFee  int64   `json:"entryFee"`
			Odds      float64 `json:"odds"`
			Game      string  `json:"game"`
			Rounds    int     `json:"rounds"`
			RoomMaker string  `json:"roomMaker"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.EntryFee <= 0 {
			errors["entryFee"] = "Entry fee must be greater than 0!"
		}
		if reqData.Game == "" {
			errors["game"] = "Game is required!"
		}
		if reqData.Rounds <= 0 {
			reqData.Rounds = 1
		}
		if reqData.Odds <= 1 {
			reqData.Odds = 1.8
		}
		if reqData.RoomMaker == "" {
			reqData.RoomMaker = string(models.RoomSideCreator)
		}
		if reqData.RoomMaker != string(models.RoomSideCreator) && reqData.RoomMaker != string(models.RoomSideOpponent) {
			errors["roomMaker"] = "Room maker must be CREATOR or OPPONENT!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateRoom", reqData)
		return c.Next()
	}
}

// Credentials validates the room credential payload
func Credentials() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RoomCode     string `json:"roomCode"`
			RoomPassword string `json:"roomPassword"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RoomCode == "" {
			errors["roomCode"] = "Room code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCredentials", reqData)
		return c.Next()
	}
}

// Result validates a result submission. Evidence is mandatory.
func Result() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WinnerSide  string `json:"winnerSide"`
			ResultImage string `json:"resultImage"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.WinnerSide != string(models.RoomSideCreator) && reqData.WinnerSide != string(models.RoomSideOpponent) {
			errors["winnerSide"] = "Winner side must be CREATOR or OPPONENT!"
		}
		if reqData.ResultImage == "" {
			errors["resultImage"] = "Result evidence image is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedResult", reqData)
		return c.Next()
	}
}

// Resolve validates an admin resolution request
func Resolve() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RoomID     uint   `json:"roomId"`
			WinnerSide string `json:"winnerSide"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RoomID == 0 {
			errors["roomId"] = "Room ID is required!"
		}
		if reqData.WinnerSide != string(models.RoomSideCreator) && reqData.WinnerSide != string(models.RoomSideOpponent) {
			errors["winnerSide"] = "Winner side must be CREATOR or OPPONENT!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedResolve", reqData)
		return c.Next()
	}
}
