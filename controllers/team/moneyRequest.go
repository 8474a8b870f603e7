package teamController

import (
	"errors"
	"log"
	"time"

	"arena-app/database"
	"arena-app/ledger"
	"arena-app/middleware"
	"arena-app/models"
	"arena-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequestMoney creates one PENDING contribution request per valid member
// (owner only). No balance is touched until a member approves.
func RequestMoney(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	teamId, err := c.ParamsInt("id")
	if err != nil || teamId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team id!", nil)
	}

	reqData, ok := c.Locals("validatedMoneyRequest").(*struct {
		MemberIDs []uint `json:"memberIds"`
		Amount    int64  `json:"amount"`
		Note      string `json:"note"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = false", teamId).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}
	if team.OwnerID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the team owner can request money!", nil)
	}

	// Keep only real members, excluding the requester
	var members []models.TeamMember
	db.Where("team_id = ? AND user_id IN ? AND user_id <> ? AND is_deleted = false",
		team.ID, reqData.MemberIDs, userId).Find(&members)

	if len(members) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No valid members to request from!", nil)
	}

	requests := make([]models.TeamMoneyRequest, 0, len(members))
	for _, m := range members {
		requests = append(requests, models.TeamMoneyRequest{
			TeamID:        team.ID,
			RequestedBy:   userId,
			RequestedFrom: m.UserID,
			Amount:        reqData.Amount,
			Note:          reqData.Note,
		})
	}

	if err := db.Create(&requests).Error; err != nil {
		log.Printf("Error creating money requests for team %d: %v", team.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create requests!", nil)
	}

	for _, r := range requests {
		var member models.User
		if err := db.Where("id = ?", r.RequestedFrom).First(&member).Error; err == nil {
			utils.SendMoneyRequestEmail(member.Email, member.Name, team.Name, r.Amount)
			go utils.NotifyUser(member.ID, "team", "Contribution requested",
				"Your team owner requested a contribution.")
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Money requests created!", requests)
}

// RespondMoneyRequest approves or rejects a contribution request. Approval
// flips the request PENDING->APPROVED, debits the member and credits the team
// with two ledger rows, all in one serializable unit: if any step fails the
// whole unit rolls back and the request is still visibly PENDING.
func RespondMoneyRequest(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	requestId, err := c.ParamsInt("id")
	if err != nil || requestId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	reqData, ok := c.Locals("validatedRespond").(*struct {
		Action string `json:"action"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request models.TeamMoneyRequest
	if err := db.Where("id = ? AND is_deleted = false", requestId).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	if request.RequestedFrom != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This request is not addressed to you!", nil)
	}
	if request.Status != models.MoneyRequestPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request already processed!", fiber.Map{
			"currentStatus": request.Status,
		})
	}

	if reqData.Action == "reject" {
		now := time.Now()
		res := db.Model(&models.TeamMoneyRequest{}).
			Where("id = ? AND status = ? AND is_deleted = false", request.ID, models.MoneyRequestPending).
			Updates(map[string]interface{}{
				"status":       models.MoneyRequestRejected,
				"responded_at": &now,
			})
		if res.Error != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject request!", nil)
		}
		if res.RowsAffected == 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request already processed!", nil)
		}

		db.Where("id = ?", request.ID).First(&request)
		go utils.NotifyUser(request.RequestedBy, "team", "Contribution rejected", "A member rejected the contribution request.")

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Request rejected!", request)
	}

	// Approve
	err = database.WithSerializableTx(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.TeamMoneyRequest{}).
			Where("id = ? AND status = ? AND is_deleted = false", request.ID, models.MoneyRequestPending).
			Updates(map[string]interface{}{
				"status":       models.MoneyRequestApproved,
				"responded_at": &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ledger.ErrAlreadyProcessed
		}

		// A failed guard here rolls the status flip back with everything else
		if err := ledger.DebitUser(tx, userId, request.Amount); err != nil {
			return err
		}
		if err := ledger.CreditTeam(tx, request.TeamID, request.Amount); err != nil {
			return err
		}

		if err := ledger.Record(tx, &models.Transaction{
			OwnerType:   models.OwnerTypeUser,
			OwnerID:     userId,
			Type:        models.TransactionTypeWithdrawal,
			Amount:      request.Amount,
			Status:      models.TransactionStatusCompleted,
			Reference:   ledger.ContributionDebitReference(request.ID, userId),
			Description: "Contribution to team wallet",
		}); err != nil {
			return err
		}
		return ledger.Record(tx, &models.Transaction{
			OwnerType:   models.OwnerTypeTeam,
			OwnerID:     request.TeamID,
			Type:        models.TransactionTypeMemberContribution,
			Amount:      request.Amount,
			Status:      models.TransactionStatusCompleted,
			Reference:   ledger.ContributionReference(request.ID, userId),
			Description: "Member contribution",
		})
	})
	if err != nil {
		if errors.Is(err, ledger.ErrAlreadyProcessed) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request already processed!", nil)
		}
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient balance!", nil)
		}
		log.Printf("Error approving money request %d: %v", request.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve request!", nil)
	}

	db.Where("id = ?", request.ID).First(&request)

	var team models.Team
	db.Where("id = ?", request.TeamID).First(&team)

	go utils.NotifyUser(request.RequestedBy, "team", "Contribution approved", "A member contributed to the team wallet.")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request approved!", fiber.Map{
		"request":     request,
		"teamBalance": team.Balance,
	})
}

// ListMyMoneyRequests lists requests addressed to the caller
func ListMyMoneyRequests(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	status := c.Query("status")
	db := database.Database.Db

	query := db.Model(&models.TeamMoneyRequest{}).
		Where("requested_from = ? AND is_deleted = false", userId)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.TeamMoneyRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Money requests fetched!", requests)
}
