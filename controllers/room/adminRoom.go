package roomController

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

// ListUnderReview lists rooms awaiting adjudication (Admin only)
func ListUnderReview(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.CustomRoom{}).
		Where("status = ? AND is_deleted = false", models.RoomStatusUnderReview)

	var total int64
	query.Count(&total)

	var rooms []models.CustomRoom
	if err := query.Order("updated_at ASC").Offset(offset).Limit(limit).Find(&rooms).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rooms!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rooms under review fetched!", fiber.Map{
		"rooms": rooms,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ResolveRoom finalizes a wager (Admin only). The status flip to RESOLVED is
// a conditional update guarded on UNDER_REVIEW, and the winner's payout is
// credited in the same unit, so concurrent resolves produce exactly one
// payout.
func ResolveRoom(c *fiber.Ctx) error {
	adminId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedResolve").(*struct {
		RoomID     uint   `json:"roomId"`
		WinnerSide string `json:"winnerSide"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var room models.CustomRoom
	if err := db.Where("id = ? AND is_deleted = false", reqData.RoomID).First(&room).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Room not found!", nil)
	}

	if room.Status != models.RoomStatusUnderReview {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room is not under review!", fiber.Map{
			"currentStatus": room.Status,
		})
	}
	if room.OpponentID == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Room has no opponent!", nil)
	}

	winnerSide := models.RoomSide(reqData.WinnerSide)
	var winnerId uint
	if winnerSide == models.RoomSideCreator {
		winnerId = room.CreatorID
	} else {
		winnerId = *room.OpponentID
	}

	err := database.WithSerializableTx(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.CustomRoom{}).
			Where("id = ? AND status = ? AND is_deleted = false", room.ID, models.RoomStatusUnderReview).
			Updates(map[string]interface{}{
				"status":      models.RoomStatusResolved,
				"winner_side": winnerSide,
				"resolved_by": adminId,
				"resolved_at": &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ledger.ErrConflict
		}

		if err := ledger.CreditUser(tx, winnerId, room.Payout); err != nil {
			return err
		}
		return ledger.Record(tx, &models.Transaction{
			OwnerType:   models.OwnerTypeUser,
			OwnerID:     winnerId,
			Type:        models.TransactionTypeCustomMatchPayout,
			Amount:      room.Payout,
			Status:      models.TransactionStatusCompleted,
			Reference:   ledger.PayoutReference(room.ID, winnerId),
			Description: "Payout for custom room win",
			AdminID:     adminId,
		})
	})
	if err != nil {
		if errors.Is(err, ledger.ErrConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room is not under review!", nil)
		}
		log.Printf("Error resolving room %d: %v", room.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve room!", nil)
	}

	db.Where("id = ?", room.ID).First(&room)

	// Outcome mails for both sides, after commit
	var winner, loser models.User
	loserId := room.CreatorID
	if winnerId == room.CreatorID {
		loserId = *room.OpponentID
	}
	if err := db.Where("id = ?", winnerId).First(&winner).Error; err == nil {
		utils.SendRoomResolvedEmail(winner.Email, winner.Name, true, room.Payout)
		go utils.NotifyUser(winnerId, "room", "Match won", "Your payout has been credited.")
	}
	if err := db.Where("id = ?", loserId).First(&loser).Error; err == nil {
		utils.SendRoomResolvedEmail(loser.Email, loser.Name, false, 0)
		go utils.NotifyUser(loserId, "room", "Match resolved", "Your match has been resolved.")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Room resolved!", room)
}
