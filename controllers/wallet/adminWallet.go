package walletController

import (
	"errors"
	"log"

	"arena-app/database"
	"arena-app/ledger"
	"arena-app/middleware"
	"arena-app/models"
	"arena-app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// GetPendingTransactions lists transactions awaiting adjudication (Admin only)
func GetPendingTransactions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	txnType := c.Query("type")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Transaction{}).
		Where("status = ? AND is_deleted = false", models.TransactionStatusPending)
	if txnType != "" {
		query = query.Where("type = ?", txnType)
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	if err := query.
		Order("transaction_date ASC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending transactions fetched!", fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// FinalizeTransaction adjudicates a PENDING deposit or withdrawal (Admin
// only). The status flip is one-way: the conditional update is guarded on the
// row still being PENDING, and the balance effect rides in the same database
// transaction. DEPOSIT+COMPLETED credits the user; WITHDRAWAL+FAILED refunds
// the amount debited at submission; the other two combinations move no money.
func FinalizeTransaction(c *fiber.Ctx) error {
	adminId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedFinalize").(*struct {
		TransactionID uint   `json:"transactionId"`
		Status        string `json:"status"`
		Reason        string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	target := models.TransactionStatus(reqData.Status)
	db := database.Database.Db

	var txn models.Transaction
	if err := db.Where("id = ? AND is_deleted = false", reqData.TransactionID).First(&txn).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	if txn.Status != models.TransactionStatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction already finalized!", fiber.Map{
			"currentStatus": txn.Status,
		})
	}

	err := database.WithSerializableTx(func(tx *gorm.DB) error {
		// Re-read inside the unit; a concurrent admin may have won already
		var fresh models.Transaction
		if err := tx.Where("id = ? AND is_deleted = false", reqData.TransactionID).First(&fresh).Error; err != nil {
			return err
		}
		if fresh.Status != models.TransactionStatusPending {
			return ledger.ErrAlreadyFinalized
		}

		if err := ledger.Finalize(tx, fresh.ID, target, adminId, reqData.Reason); err != nil {
			// Guard raced between the read and the update
			if errors.Is(err, ledger.ErrAlreadyFinalized) {
				return ledger.ErrConflict
			}
			return err
		}

		switch {
		case fresh.Type == models.TransactionTypeDeposit && target == models.TransactionStatusCompleted:
			return ledger.CreditUser(tx, fresh.OwnerID, fresh.Amount)
		case fresh.Type == models.TransactionTypeWithdrawal && target == models.TransactionStatusFailed:
			// Refund: the amount was debited when the withdrawal was filed
			return ledger.CreditUser(tx, fresh.OwnerID, fresh.Amount)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ledger.ErrAlreadyFinalized) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction already finalized!", fiber.Map{
				"currentStatus": txn.Status,
			})
		}
		if errors.Is(err, ledger.ErrConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction was finalized concurrently!", nil)
		}
		log.Printf("Error finalizing transaction %d: %v", reqData.TransactionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to finalize transaction!", nil)
	}

	db.Where("id = ?", reqData.TransactionID).First(&txn)

	var owner models.User
	if err := db.Where("id = ?", txn.OwnerID).First(&owner).Error; err == nil {
		utils.SendTransactionFinalizedEmail(owner.Email, owner.Name, string(txn.Type), txn.Amount,
			target == models.TransactionStatusCompleted)
		go utils.NotifyUser(owner.ID, "wallet", "Transaction "+string(target),
			"Your "+string(txn.Type)+" request has been processed.")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction finalized!", fiber.Map{
		"transaction": txn,
	})
}

// GetWalletStats returns platform-wide wallet figures for today (Admin only)
func GetWalletStats(c *fiber.Ctx) error {
	db := database.Database.Db
	dayStart := now.BeginningOfDay()

	type sums struct {
		Count int64
		Total int64
	}

	collect := func(txnType models.TransactionType, status models.TransactionStatus) sums {
		var s sums
		db.Model(&models.Transaction{}).
			Where("type = ? AND status = ? AND transaction_date >= ? AND is_deleted = false", txnType, status, dayStart).
			Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
			Scan(&s)
		return s
	}

	deposits := collect(models.TransactionTypeDeposit, models.TransactionStatusCompleted)
	withdrawals := collect(models.TransactionTypeWithdrawal, models.TransactionStatusCompleted)
	stakes := collect(models.TransactionTypeCustomMatchStake, models.TransactionStatusCompleted)
	payouts := collect(models.TransactionTypeCustomMatchPayout, models.TransactionStatusCompleted)

	var pendingCount int64
	db.Model(&models.Transaction{}).
		Where("status = ? AND is_deleted = false", models.TransactionStatusPending).
		Count(&pendingCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet stats fetched!", fiber.Map{
		"since":        dayStart,
		"deposits":     deposits,
		"withdrawals":  withdrawals,
		"stakes":       stakes,
		"payouts":      payouts,
		"pendingCount": pendingCount,
	})
}

// AddBalance adds balance to user's wallet (Admin only)
func AddBalance(c *fiber.Ctx) error {
	adminId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedAddBalance").(*struct {
		UserID uint   `json:"userId"`
		Amount int64  `json:"amount"`
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var targetUser models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.UserID).First(&targetUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	transaction := models.Transaction{
		OwnerType:   models.OwnerTypeUser,
		OwnerID:     reqData.UserID,
		Type:        models.TransactionTypeAdminCredit,
		Amount:      reqData.Amount,
		Status:      models.TransactionStatusCompleted,
		Reference:   ledger.AdminAdjustReference(reqData.UserID),
		Description: "Admin credit: " + reqData.Reason,
		AdminID:     adminId,
		Reason:      reqData.Reason,
	}

	err := database.WithSerializableTx(func(tx *gorm.DB) error {
		if err := ledger.CreditUser(tx, reqData.UserID, reqData.Amount); err != nil {
			return err
		}
		return ledger.Record(tx, &transaction)
	})
	if err != nil {
		log.Printf("Error adding balance to user %d: %v", reqData.UserID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add balance!", nil)
	}

	db.Where("id = ?", reqData.UserID).First(&targetUser)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Balance added successfully!", fiber.Map{
		"transactionId": transaction.ID,
		"userId":        reqData.UserID,
		"amountAdded":   reqData.Amount,
		"newBalance":    targetUser.Balance,
		"reason":        reqData.Reason,
	})
}

// DeductBalance deducts balance from user's wallet (Admin only)
func DeductBalance(c *fiber.Ctx) error {
	adminId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedDeductBalance").(*struct {
		UserID uint   `json:"userId"`
		Amount int64  `json:"amount"`
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var targetUser models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.UserID).First(&targetUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	transaction := models.Transaction{
		OwnerType:   models.OwnerTypeUser,
		OwnerID:     reqData.UserID,
		Type:        models.TransactionTypeAdminDebit,
		Amount:      reqData.Amount,
		Status:      models.TransactionStatusCompleted,
		Reference:   ledger.AdminAdjustReference(reqData.UserID),
		Description: "Admin debit: " + reqData.Reason,
		AdminID:     adminId,
		Reason:      reqData.Reason,
	}

	err := database.WithSerializableTx(func(tx *gorm.DB) error {
		if err := ledger.DebitUser(tx, reqData.UserID, reqData.Amount); err != nil {
			return err
		}
		return ledger.Record(tx, &transaction)
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient balance to deduct!", nil)
		}
		log.Printf("Error deducting balance from user %d: %v", reqData.UserID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to deduct balance!", nil)
	}

	db.Where("id = ?", reqData.UserID).First(&targetUser)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Balance deducted successfully!", fiber.Map{
		"transactionId":  transaction.ID,
		"userId":         reqData.UserID,
		"amountDeducted": reqData.Amount,
		"newBalance":     targetUser.Balance,
		"reason":         reqData.Reason,
	})
}
