package teamValidator

import (
	"arena-app/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateTeam validates a team creation request
func CreateTeam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name string `json:"name"`
			Tag  string `json:"tag"`
			Game string `json:"game"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name == "" {
			errors["name"] = "Team name is required!"
		}
		if len(reqData.Tag) > 10 {
			errors["tag"] = "Tag must be at most 10 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateTeam", reqData)
		return c.Next()
	}
}

// AddMember validates an add member request
func AddMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID uint `json:"userId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddMember", reqData)
		return c.Next()
	}
}

// MoneyRequest validates a team money request
func MoneyRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MemberIDs []uint `json:"memberIds"`
			Amount    int64  `json:"amount"`
			Note      string `json:"note"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.MemberIDs) == 0 {
			errors["memberIds"] = "At least one member is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMoneyRequest", reqData)
		return c.Next()
	}
}

// Respond validates a money-request response
func Respond() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Action string `json:"action"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Action != "approve" && reqData.Action != "reject" {
			errors["action"] = "Action must be approve or reject!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRespond", reqData)
		return c.Next()
	}
}
