package roomController_test

import (
	"fmt"
	"testing"

	"arena-app/models"
	"arena-app/testutil"

	"github.com/stretchr/testify/require"
)

func TestWagerLifecycle(t *testing.T) {
	app, db := testutil.SetupApp(t)

	creator, creatorToken := testutil.CreateUser(t, db, "Creator", "creator@test.io", "USER", 1000)
	opponent, opponentToken := testutil.CreateUser(t, db, "Opponent", "opponent@test.io", "USER", 1000)
	_, adminToken := testutil.CreateUser(t, db, "Admin", "admin@test.io", "ADMIN", 0)

	// Create: stake debited with the room
	code, resp := testutil.DoJSON(t, app, "POST", "/rooms", creatorToken, map[string]interface{}{
		"entryFee": 200,
		"odds":     1.8,
		"game":     "bgmi",
		"rounds":   1,
	})
	require.Equal(t, 201, code)
	data := testutil.Data(t, resp)
	roomID := uint(data["ID"].(float64))
	require.Equal(t, string(models.RoomStatusWaitingJoin), data["status"].(string))

	var u models.User
	require.NoError(t, db.First(&u, creator.ID).Error)
	require.Equal(t, int64(800), u.Balance)

	// Join: opponent staked, room READY_TO_START
	code, resp = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/join", roomID), opponentToken, nil)
	require.Equal(t, 200, code)
	require.Equal(t, string(models.RoomStatusReadyToStart), testutil.Data(t, resp)["status"].(string))

	require.NoError(t, db.First(&u, opponent.ID).Error)
	require.Equal(t, int64(800), u.Balance)

	// One ready flag is not enough
	code, resp = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/ready", roomID), creatorToken, nil)
	require.Equal(t, 200, code)
	require.Equal(t, string(models.RoomStatusReadyToStart), testutil.Data(t, resp)["status"].(string))

	code, resp = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/ready", roomID), opponentToken, nil)
	require.Equal(t, 200, code)
	require.Equal(t, string(models.RoomStatusStarted), testutil.Data(t, resp)["status"].(string))

	// Room maker (creator by default) shares credentials
	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/credentials", roomID), creatorToken, map[string]interface{}{
		"roomCode":     "ROOM42",
		"roomPassword": "hunter2",
	})
	require.Equal(t, 200, code)

	// Opponent cannot submit the result
	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/result", roomID), opponentToken, map[string]interface{}{
		"winnerSide":  "OPPONENT",
		"resultImage": "/uploads/result.png",
	})
	require.Equal(t, 403, code)

	code, resp = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/result", roomID), creatorToken, map[string]interface{}{
		"winnerSide":  "CREATOR",
		"resultImage": "/uploads/result.png",
	})
	require.Equal(t, 200, code)
	require.Equal(t, string(models.RoomStatusUnderReview), testutil.Data(t, resp)["status"].(string))

	// Admin resolves: payout of floor(200 * 1.8) = 360 to the winner
	code, _ = testutil.DoJSON(t, app, "POST", "/rooms/admin/resolve", adminToken, map[string]interface{}{
		"roomId":     roomID,
		"winnerSide": "CREATOR",
	})
	require.Equal(t, 200, code)

	require.NoError(t, db.First(&u, creator.ID).Error)
	require.Equal(t, int64(1160), u.Balance)
	require.NoError(t, db.First(&u, opponent.ID).Error)
	require.Equal(t, int64(800), u.Balance)

	// Second resolve is rejected and pays nothing
	code, _ = testutil.DoJSON(t, app, "POST", "/rooms/admin/resolve", adminToken, map[string]interface{}{
		"roomId":     roomID,
		"winnerSide": "OPPONENT",
	})
	require.Equal(t, 409, code)

	require.NoError(t, db.First(&u, creator.ID).Error)
	require.Equal(t, int64(1160), u.Balance)
	require.NoError(t, db.First(&u, opponent.ID).Error)
	require.Equal(t, int64(800), u.Balance)
}

func TestCreateRoomInsufficientBalance(t *testing.T) {
	app, db := testutil.SetupApp(t)

	_, token := testutil.CreateUser(t, db, "Broke", "broke@test.io", "USER", 50)

	code, resp := testutil.DoJSON(t, app, "POST", "/rooms", token, map[string]interface{}{
		"entryFee": 200,
		"game":     "bgmi",
	})
	require.Equal(t, 400, code)
	require.Contains(t, resp["message"], "Insufficient balance")

	// Neither a room nor a ledger row survives the failed guard
	var roomCount, txnCount int64
	db.Model(&models.CustomRoom{}).Count(&roomCount)
	db.Model(&models.Transaction{}).Count(&txnCount)
	require.Equal(t, int64(0), roomCount)
	require.Equal(t, int64(0), txnCount)
}

func TestJoinRoomGuards(t *testing.T) {
	app, db := testutil.SetupApp(t)

	_, creatorToken := testutil.CreateUser(t, db, "Creator", "creator@test.io", "USER", 1000)
	_, brokeToken := testutil.CreateUser(t, db, "Broke", "broke@test.io", "USER", 50)
	opponent, opponentToken := testutil.CreateUser(t, db, "Opponent", "opponent@test.io", "USER", 1000)
	_, lateToken := testutil.CreateUser(t, db, "Late", "late@test.io", "USER", 1000)

	code, resp := testutil.DoJSON(t, app, "POST", "/rooms", creatorToken, map[string]interface{}{
		"entryFee": 200,
		"game":     "bgmi",
	})
	require.Equal(t, 201, code)
	roomID := uint(testutil.Data(t, resp)["ID"].(float64))

	// Self-join
	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/join", roomID), creatorToken, nil)
	require.Equal(t, 400, code)

	// Insufficient balance: the slot claim rolls back with the failed debit
	code, resp = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/join", roomID), brokeToken, nil)
	require.Equal(t, 400, code)
	require.Contains(t, resp["message"], "Insufficient balance")

	var room models.CustomRoom
	require.NoError(t, db.First(&room, roomID).Error)
	require.Equal(t, models.RoomStatusWaitingJoin, room.Status)
	require.Nil(t, room.OpponentID)

	// A solvent opponent still gets in
	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/join", roomID), opponentToken, nil)
	require.Equal(t, 200, code)

	// The slot is taken now
	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/join", roomID), lateToken, nil)
	require.Equal(t, 409, code)

	require.NoError(t, db.First(&room, roomID).Error)
	require.NotNil(t, room.OpponentID)
	require.Equal(t, opponent.ID, *room.OpponentID)
}

func TestCancelRoomRefund(t *testing.T) {
	app, db := testutil.SetupApp(t)

	creator, creatorToken := testutil.CreateUser(t, db, "Creator", "creator@test.io", "USER", 1000)
	_, opponentToken := testutil.CreateUser(t, db, "Opponent", "opponent@test.io", "USER", 1000)

	code, resp := testutil.DoJSON(t, app, "POST", "/rooms", creatorToken, map[string]interface{}{
		"entryFee": 300,
		"game":     "freefire",
	})
	require.Equal(t, 201, code)
	roomID := uint(testutil.Data(t, resp)["ID"].(float64))

	var u models.User
	require.NoError(t, db.First(&u, creator.ID).Error)
	require.Equal(t, int64(700), u.Balance)

	// Cancel before anyone joins: stake comes back
	code, resp = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/cancel", roomID), creatorToken, nil)
	require.Equal(t, 200, code)
	require.Equal(t, string(models.RoomStatusCancelled), testutil.Data(t, resp)["status"].(string))

	require.NoError(t, db.First(&u, creator.ID).Error)
	require.Equal(t, int64(1000), u.Balance)

	var refund models.Transaction
	require.NoError(t, db.Where("type = ?", models.TransactionTypeRefund).First(&refund).Error)
	require.Equal(t, int64(300), refund.Amount)

	// A joined room can no longer be cancelled
	code, resp = testutil.DoJSON(t, app, "POST", "/rooms", creatorToken, map[string]interface{}{
		"entryFee": 300,
		"game":     "freefire",
	})
	require.Equal(t, 201, code)
	secondID := uint(testutil.Data(t, resp)["ID"].(float64))

	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/join", secondID), opponentToken, nil)
	require.Equal(t, 200, code)

	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/rooms/%d/cancel", secondID), creatorToken, nil)
	require.Equal(t, 409, code)
}
