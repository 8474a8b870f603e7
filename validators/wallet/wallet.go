package walletValidator

import (
	"arena-app/middleware"
	"arena-app/models"

	"github.com/gofiber/fiber/v2"
)

// Deposit validates a deposit submission
func Deposit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount          int64  `json:"amount"`
			Method          string `json:"method"`
			ReceiptImage    string `json:"receiptImage"`
			GatewayResponse any    `json:"gatewayResponse"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if reqData.Method == "" {
			errors["method"] = "Payment method is required!"
		}
		if reqData.ReceiptImage == "" {
			errors["receiptImage"] = "Payment receipt is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDeposit", reqData)
		return c.Next()
	}
}

// Withdrawal validates a withdrawal submission
func Withdrawal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount      int64  `json:"amount"`
			AccountNo   string `json:"accountNo"`
			AccountName string `json:"accountName"`
			IFSCCode    string `json:"ifscCode"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if reqData.AccountNo == "" {
			errors["accountNo"] = "Account number is required!"
		}
		if reqData.AccountName == "" {
			errors["accountName"] = "Account holder name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWithdrawal", reqData)
		return c.Next()
	}
}

// Finalize validates an admin adjudication request
func Finalize() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TransactionID uint   `json:"transactionId"`
			Status        string `json:"status"`
			Reason        string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TransactionID == 0 {
			errors["transactionId"] = "Transaction ID is required!"
		}
		if reqData.Status != string(models.TransactionStatusCompleted) &&
			reqData.Status != string(models.TransactionStatusFailed) {
			errors["status"] = "Status must be COMPLETED or FAILED!"
		}
		if reqData.Status == string(models.TransactionStatusFailed) && reqData.Reason == "" {
			errors["reason"] = "Reason is required when rejecting!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFinalize", reqData)
		return c.Next()
	}
}

// AddBalance validates add balance request
func AddBalance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID uint   `json:"userId"`
			Amount int64  `json:"amount"`
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddBalance", reqData)
		return c.Next()
	}
}

// DeductBalance validates deduct balance request
func DeductBalance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID uint   `json:"userId"`
			Amount int64  `json:"amount"`
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if reqData.Reason == "" {
			errors["reason"] = "Reason is required for deduction!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDeductBalance", reqData)
		return c.Next()
	}
}
