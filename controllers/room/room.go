package roomController

import (
	"errors"
	"log"

	"arena-app/config"
	"arena-app/database"
	"arena-app/ledger"
	"arena-app/middleware"
	"arena-app/models"
	"arena-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateRoom opens a two-party wager. The creator's stake is debited in the
// same unit that creates the room and its stake ledger row; a failed guard
// leaves nothing behind.
func CreateRoom(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedCreateRoom").(*struct {
		EntryFee  int64   `json:"entryFee"`
		Odds      float64 `json:"odds"`
		Game      string  `json:"game"`
		Rounds    int     `json:"rounds"`
		RoomMaker string  `json:"roomMaker"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.EntryFee > config.AppConfig.MaxRoomFee {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Entry fee exceeds the allowed maximum!", nil)
	}

	room := models.CustomRoom{
		CreatorID: userId,
		Game:      reqData.Game,
		Rounds:    reqData.Rounds,
		EntryFee:  reqData.EntryFee,
		Odds:      reqData.Odds,
		Payout:    utils.ComputePayout(reqData.EntryFee, reqData.Odds),
		Status:    models.RoomStatusWaitingJoin,
		RoomMaker: models.RoomSide(reqData.RoomMaker),
	}

	err := database.WithSerializableTx(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		if err := ledger.DebitUser(tx, userId, reqData.EntryFee); err != nil {
			return err
		}
		return ledger.Record(tx, &models.Transaction{
			OwnerType:   models.OwnerTypeUser,
			OwnerID:     userId,
			Type:        models.TransactionTypeCustomMatchStake,
			Amount:      reqData.EntryFee,
			Status:      models.TransactionStatusCompleted,
			Reference:   ledger.StakeReference(room.ID, userId),
			Description: "Stake for custom room",
		})
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient balance!", nil)
		}
		log.Printf("Error creating room for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create room!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Room created!", room)
}

// JoinRoom stakes the opponent into a waiting room. The opponent slot is
// claimed with a conditional update so two concurrent joins cannot both
// succeed.
func JoinRoom(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	roomId, err := c.ParamsInt("id")
	if err != nil || roomId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid room id!", nil)
	}

	db := database.Database.Db

	var room models.CustomRoom
	if err := db.Where("id = ? AND is_deleted = false", roomId).First(&room).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Room not found!", nil)
	}

	if room.CreatorID == userId {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot join your own room!", nil)
	}
	if room.OpponentID != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room already has an opponent!", nil)
	}
	if room.Status != models.RoomStatusWaitingJoin {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room is not open for joining!", nil)
	}

	err = database.WithSerializableTx(func(tx *gorm.DB) error {
		res := tx.Model(&models.CustomRoom{}).
			Where("id = ? AND status = ? AND opponent_id IS NULL AND is_deleted = false",
				room.ID, models.RoomStatusWaitingJoin).
			Updates(map[string]interface{}{
				"opponent_id": userId,
				"status":      models.RoomStatusReadyToStart,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ledger.ErrConflict
		}

		if err := ledger.DebitUser(tx, userId, room.EntryFee); err != nil {
			return err
		}
		return ledger.Record(tx, &models.Transaction{
			OwnerType:   models.OwnerTypeUser,
			OwnerID:     userId,
			Type:        models.TransactionTypeCustomMatchStake,
			Amount:      room.EntryFee,
			Status:      models.TransactionStatusCompleted,
			Reference:   ledger.StakeReference(room.ID, userId),
			Description: "Stake for custom room",
		})
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient balance!", nil)
		}
		if errors.Is(err, ledger.ErrConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room already has an opponent!", nil)
		}
		log.Printf("Error joining room %d by user %d: %v", room.ID, userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join room!", nil)
	}

	db.Where("id = ?", room.ID).First(&room)

	go utils.NotifyUser(room.CreatorID, "room", "Opponent joined", "An opponent has joined your room.")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Room joined!", room)
}

// MarkReady flags the caller's side as ready. Flagging twice is a no-op. The
// room moves to STARTED only when both sides are flagged.
func MarkReady(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	roomId, err := c.ParamsInt("id")
	if err != nil || roomId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid room id!", nil)
	}

	db := database.Database.Db

	var room models.CustomRoom
	if err := db.Where("id = ? AND is_deleted = false", roomId).First(&room).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Room not found!", nil)
	}

	side, ok := sideOf(&room, userId)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not part of this room!", nil)
	}

	if room.Status == models.RoomStatusStarted {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Room already started!", room)
	}
	if room.Status != models.RoomStatusReadyToStart {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room is not ready to start!", nil)
	}

	err = database.WithSerializableTx(func(tx *gorm.DB) error {
		column := "creator_ready"
		if side == models.RoomSideOpponent {
			column = "opponent_ready"
		}
		if err := tx.Model(&models.CustomRoom{}).
			Where("id = ?", room.ID).
			Update(column, true).Error; err != nil {
			return err
		}

		// Start only when both flags are set
		return tx.Model(&models.CustomRoom{}).
			Where("id = ? AND creator_ready = true AND opponent_ready = true AND status = ?",
				room.ID, models.RoomStatusReadyToStart).
			Update("status", models.RoomStatusStarted).Error
	})
	if err != nil {
		log.Printf("Error marking ready for room %d: %v", room.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark ready!", nil)
	}

	db.Where("id = ?", room.ID).First(&room)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ready flagged!", room)
}

// SetRoomCredentials releases the in-game room code and password. Only the
// configured room maker may do this.
func SetRoomCredentials(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	roomId, err := c.ParamsInt("id")
	if err != nil || roomId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid room id!", nil)
	}

	reqData, ok := c.Locals("validatedCredentials").(*struct {
		RoomCode     string `json:"roomCode"`
		RoomPassword string `json:"roomPassword"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var room models.CustomRoom
	if err := db.Where("id = ? AND is_deleted = false", roomId).First(&room).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Room not found!", nil)
	}

	if !isRoomMaker(&room, userId) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the room maker can set credentials!", nil)
	}
	if room.Status != models.RoomStatusReadyToStart && room.Status != models.RoomStatusStarted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room is not in a joinable state!", nil)
	}

	if err := db.Model(&models.CustomRoom{}).
		Where("id = ?", room.ID).
		Updates(map[string]interface{}{
			"room_code":     reqData.RoomCode,
			"room_password": reqData.RoomPassword,
		}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set credentials!", nil)
	}

	db.Where("id = ?", room.ID).First(&room)

	if room.OpponentID != nil {
		go utils.NotifyUser(*room.OpponentID, "room", "Room credentials shared", "The room code is available now.")
	}
	go utils.NotifyUser(room.CreatorID, "room", "Room credentials shared", "The room code is available now.")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Credentials set!", room)
}

// SubmitResult moves a started room to UNDER_REVIEW with the declared winner
// and evidence. Only the room maker may submit; no money moves until an admin
// resolves.
func SubmitResult(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	roomId, err := c.ParamsInt("id")
	if err != nil || roomId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid room id!", nil)
	}

	reqData, ok := c.Locals("validatedResult").(*struct {
		WinnerSide  string `json:"winnerSide"`
		ResultImage string `json:"resultImage"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var room models.CustomRoom
	if err := db.Where("id = ? AND is_deleted = false", roomId).First(&room).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Room not found!", nil)
	}

	if !isRoomMaker(&room, userId) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the room maker can submit the result!", nil)
	}
	if room.Status != models.RoomStatusStarted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room has not started or is already under review!", nil)
	}

	res := db.Model(&models.CustomRoom{}).
		Where("id = ? AND status = ? AND is_deleted = false", room.ID, models.RoomStatusStarted).
		Updates(map[string]interface{}{
			"status":       models.RoomStatusUnderReview,
			"winner_side":  reqData.WinnerSide,
			"result_image": reqData.ResultImage,
		})
	if res.Error != nil {
		log.Printf("Error submitting result for room %d: %v", room.ID, res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit result!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room has not started or is already under review!", nil)
	}

	db.Where("id = ?", room.ID).First(&room)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result submitted for review!", room)
}

// CancelRoom lets the creator cancel a room nobody has joined and take the
// stake back. Once an opponent stakes, only an admin resolution releases
// funds.
func CancelRoom(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	roomId, err := c.ParamsInt("id")
	if err != nil || roomId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid room id!", nil)
	}

	db := database.Database.Db

	var room models.CustomRoom
	if err := db.Where("id = ? AND is_deleted = false", roomId).First(&room).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Room not found!", nil)
	}

	if room.CreatorID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the creator can cancel the room!", nil)
	}
	if room.Status != models.RoomStatusWaitingJoin {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room can no longer be cancelled!", nil)
	}

	err = database.WithSerializableTx(func(tx *gorm.DB) error {
		res := tx.Model(&models.CustomRoom{}).
			Where("id = ? AND status = ? AND is_deleted = false", room.ID, models.RoomStatusWaitingJoin).
			Update("status", models.RoomStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ledger.ErrConflict
		}

		if err := ledger.CreditUser(tx, userId, room.EntryFee); err != nil {
			return err
		}
		return ledger.Record(tx, &models.Transaction{
			OwnerType:   models.OwnerTypeUser,
			OwnerID:     userId,
			Type:        models.TransactionTypeRefund,
			Amount:      room.EntryFee,
			Status:      models.TransactionStatusCompleted,
			Reference:   ledger.RoomRefundReference(room.ID, userId),
			Description: "Stake refund for cancelled room",
		})
	})
	if err != nil {
		if errors.Is(err, ledger.ErrConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Room can no longer be cancelled!", nil)
		}
		log.Printf("Error cancelling room %d: %v", room.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel room!", nil)
	}

	db.Where("id = ?", room.ID).First(&room)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Room cancelled and stake refunded!", room)
}

// GetRoom returns a single room
func GetRoom(c *fiber.Ctx) error {
	roomId, err := c.ParamsInt("id")
	if err != nil || roomId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid room id!", nil)
	}

	var room models.CustomRoom
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", roomId).First(&room).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Room not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Room fetched!", room)
}

// ListOpenRooms lists rooms waiting for an opponent
func ListOpenRooms(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	game := c.Query("game")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.CustomRoom{}).
		Where("status = ? AND is_deleted = false", models.RoomStatusWaitingJoin)
	if game != "" {
		query = query.Where("game = ?", game)
	}

	var total int64
	query.Count(&total)

	var rooms []models.CustomRoom
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rooms).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rooms!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Open rooms fetched!", fiber.Map{
		"rooms": rooms,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// sideOf tells which side of the room the user is on
func sideOf(room *models.CustomRoom, userId uint) (models.RoomSide, bool) {
	if room.CreatorID == userId {
		return models.RoomSideCreator, true
	}
	if room.OpponentID != nil && *room.OpponentID == userId {
		return models.RoomSideOpponent, true
	}
	return "", false
}

func isRoomMaker(room *models.CustomRoom, userId uint) bool {
	side, ok := sideOf(room, userId)
	return ok && side == room.RoomMaker
}
