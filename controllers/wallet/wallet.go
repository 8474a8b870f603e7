package walletController

import (
	"encoding/json"
	"errors"
	"log"

	"arena-app/config"
	"arena-app/database"
	"arena-app/ledger"
	"arena-app/middleware"
	"arena-app/models"
	"arena-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetWalletBalance returns user's current wallet balance
func GetWalletBalance(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balance fetched!", fiber.Map{
		"balance":  user.Balance,
		"currency": "COINS",
	})
}

// SubmitDeposit files a deposit request. The transaction is created PENDING
// and the balance is untouched until an admin approves it.
func SubmitDeposit(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedDeposit").(*struct {
		Amount          int64  `json:"amount"`
		Method          string `json:"method"`
		ReceiptImage    string `json:"receiptImage"`
		GatewayResponse any    `json:"gatewayResponse"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Convert gateway response to a JSON column value
	var gatewayJSON datatypes.JSON
	if reqData.GatewayResponse != nil {
		if jsonBytes, err := json.Marshal(reqData.GatewayResponse); err == nil {
			gatewayJSON = datatypes.JSON(jsonBytes)
		}
	}

	transaction := models.Transaction{
		OwnerType:       models.OwnerTypeUser,
		OwnerID:         userId,
		Type:            models.TransactionTypeDeposit,
		Amount:          reqData.Amount,
		Status:          models.TransactionStatusPending,
		Reference:       ledger.DepositReference(userId),
		Description:     "Wallet deposit via " + reqData.Method,
		Method:          reqData.Method,
		ReceiptImage:    reqData.ReceiptImage,
		GatewayResponse: gatewayJSON,
	}

	err := database.WithSerializableTx(func(tx *gorm.DB) error {
		return ledger.Record(tx, &transaction)
	})
	if err != nil {
		log.Printf("Error creating deposit for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit deposit!", nil)
	}

	utils.SendDepositReceivedEmail(user.Email, user.Name, reqData.Amount)
	go utils.NotifyUser(userId, "deposit", "Deposit received", "Your deposit is under review.")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Deposit submitted for review!", fiber.Map{
		"transaction": transaction,
		"balance":     user.Balance,
	})
}

// SubmitWithdrawal files a withdrawal request. Unlike deposits, the amount
// leaves the spendable balance immediately so it cannot be spent twice while
// the request is pending; an admin rejection refunds it.
func SubmitWithdrawal(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedWithdrawal").(*struct {
		Amount      int64  `json:"amount"`
		AccountNo   string `json:"accountNo"`
		AccountName string `json:"accountName"`
		IFSCCode    string `json:"ifscCode"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Amount < config.AppConfig.MinWithdrawal {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Amount is below the minimum withdrawal!", nil)
	}

	transaction := models.Transaction{
		OwnerType:   models.OwnerTypeUser,
		OwnerID:     userId,
		Type:        models.TransactionTypeWithdrawal,
		Amount:      reqData.Amount,
		Status:      models.TransactionStatusPending,
		Reference:   ledger.WithdrawalReference(userId),
		Description: "Wallet withdrawal to account " + reqData.AccountNo,
		AccountNo:   reqData.AccountNo,
		AccountName: reqData.AccountName,
		IFSCCode:    reqData.IFSCCode,
	}

	err := database.WithSerializableTx(func(tx *gorm.DB) error {
		if err := ledger.DebitUser(tx, userId, reqData.Amount); err != nil {
			return err
		}
		return ledger.Record(tx, &transaction)
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient balance!", nil)
		}
		log.Printf("Error creating withdrawal for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit withdrawal!", nil)
	}

	// Fresh balance after the debit
	database.Database.Db.Where("id = ?", userId).First(&user)

	go utils.NotifyUser(userId, "withdrawal", "Withdrawal requested", "Your withdrawal is under review.")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Withdrawal submitted for review!", fiber.Map{
		"transaction": transaction,
		"balance":     user.Balance,
	})
}

// GetWalletHistory returns user's wallet transaction history
func GetWalletHistory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	// Parse query params
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	txnType := c.Query("type") // DEPOSIT, WITHDRAWAL, CUSTOM_MATCH_STAKE, etc.

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Transaction{}).
		Where("owner_type = ? AND owner_id = ? AND is_deleted = false", models.OwnerTypeUser, userId)

	if txnType != "" {
		query = query.Where("type = ?", txnType)
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	if err := query.
		Order("transaction_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet history fetched!", fiber.Map{
		"transactions":   transactions,
		"currentBalance": user.Balance,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
