package teamController_test

import (
	"fmt"
	"testing"

	"arena-app/models"
	"arena-app/testutil"

	"github.com/stretchr/testify/require"
)

func TestMoneyRequestApprove(t *testing.T) {
	app, db := testutil.SetupApp(t)

	_, ownerToken := testutil.CreateUser(t, db, "Owner", "owner@test.io", "USER", 1000)
	member, memberToken := testutil.CreateUser(t, db, "Member", "member@test.io", "USER", 2000)

	code, resp := testutil.DoJSON(t, app, "POST", "/teams", ownerToken, map[string]interface{}{
		"name": "Night Owls",
		"tag":  "NOWL",
		"game": "bgmi",
	})
	require.Equal(t, 201, code)
	teamID := uint(testutil.Data(t, resp)["ID"].(float64))

	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/teams/%d/members", teamID), ownerToken, map[string]interface{}{
		"userId": member.ID,
	})
	require.Equal(t, 201, code)

	code, resp = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/teams/%d/money-requests", teamID), ownerToken, map[string]interface{}{
		"memberIds": []uint{member.ID},
		"amount":    500,
		"note":      "tournament fund",
	})
	require.Equal(t, 201, code)

	var request models.TeamMoneyRequest
	require.NoError(t, db.Where("team_id = ? AND requested_from = ?", teamID, member.ID).First(&request).Error)
	require.Equal(t, models.MoneyRequestPending, request.Status)

	code, resp = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/money-requests/%d/respond", request.ID), memberToken, map[string]interface{}{
		"action": "approve",
	})
	require.Equal(t, 200, code)
	require.Equal(t, float64(500), testutil.Data(t, resp)["teamBalance"])

	var u models.User
	require.NoError(t, db.First(&u, member.ID).Error)
	require.Equal(t, int64(1500), u.Balance)

	var team models.Team
	require.NoError(t, db.First(&team, teamID).Error)
	require.Equal(t, int64(500), team.Balance)

	// Both sides of the contribution are on the ledger
	var memberRow, teamRow models.Transaction
	require.NoError(t, db.Where("owner_type = ? AND owner_id = ?", models.OwnerTypeUser, member.ID).First(&memberRow).Error)
	require.NoError(t, db.Where("owner_type = ? AND owner_id = ?", models.OwnerTypeTeam, teamID).First(&teamRow).Error)
	require.Equal(t, models.TransactionTypeMemberContribution, teamRow.Type)

	// Approving twice is rejected and moves nothing
	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/money-requests/%d/respond", request.ID), memberToken, map[string]interface{}{
		"action": "approve",
	})
	require.Equal(t, 409, code)

	require.NoError(t, db.First(&u, member.ID).Error)
	require.Equal(t, int64(1500), u.Balance)
}

func TestMoneyRequestReject(t *testing.T) {
	app, db := testutil.SetupApp(t)

	_, ownerToken := testutil.CreateUser(t, db, "Owner", "owner@test.io", "USER", 1000)
	member, memberToken := testutil.CreateUser(t, db, "Member", "member@test.io", "USER", 2000)

	code, resp := testutil.DoJSON(t, app, "POST", "/teams", ownerToken, map[string]interface{}{
		"name": "Night Owls",
	})
	require.Equal(t, 201, code)
	teamID := uint(testutil.Data(t, resp)["ID"].(float64))

	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/teams/%d/members", teamID), ownerToken, map[string]interface{}{
		"userId": member.ID,
	})
	require.Equal(t, 201, code)

	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/teams/%d/money-requests", teamID), ownerToken, map[string]interface{}{
		"memberIds": []uint{member.ID},
		"amount":    500,
	})
	require.Equal(t, 201, code)

	var request models.TeamMoneyRequest
	require.NoError(t, db.Where("team_id = ?", teamID).First(&request).Error)

	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/money-requests/%d/respond", request.ID), memberToken, map[string]interface{}{
		"action": "reject",
	})
	require.Equal(t, 200, code)

	require.NoError(t, db.First(&request, request.ID).Error)
	require.Equal(t, models.MoneyRequestRejected, request.Status)

	// No money moved either way
	var u models.User
	require.NoError(t, db.First(&u, member.ID).Error)
	require.Equal(t, int64(2000), u.Balance)

	var team models.Team
	require.NoError(t, db.First(&team, teamID).Error)
	require.Equal(t, int64(0), team.Balance)
}

func TestMoneyRequestInsufficientLeavesPending(t *testing.T) {
	app, db := testutil.SetupApp(t)

	_, ownerToken := testutil.CreateUser(t, db, "Owner", "owner@test.io", "USER", 1000)
	member, memberToken := testutil.CreateUser(t, db, "Member", "member@test.io", "USER", 100)

	code, resp := testutil.DoJSON(t, app, "POST", "/teams", ownerToken, map[string]interface{}{
		"name": "Night Owls",
	})
	require.Equal(t, 201, code)
	teamID := uint(testutil.Data(t, resp)["ID"].(float64))

	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/teams/%d/members", teamID), ownerToken, map[string]interface{}{
		"userId": member.ID,
	})
	require.Equal(t, 201, code)

	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/teams/%d/money-requests", teamID), ownerToken, map[string]interface{}{
		"memberIds": []uint{member.ID},
		"amount":    500,
	})
	require.Equal(t, 201, code)

	var request models.TeamMoneyRequest
	require.NoError(t, db.Where("team_id = ?", teamID).First(&request).Error)

	// The member cannot cover the amount: the status flip rolls back too
	code, resp = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/money-requests/%d/respond", request.ID), memberToken, map[string]interface{}{
		"action": "approve",
	})
	require.Equal(t, 400, code)
	require.Contains(t, resp["message"], "Insufficient balance")

	require.NoError(t, db.First(&request, request.ID).Error)
	require.Equal(t, models.MoneyRequestPending, request.Status)

	var team models.Team
	require.NoError(t, db.First(&team, teamID).Error)
	require.Equal(t, int64(0), team.Balance)
}

func TestMoneyRequestGuards(t *testing.T) {
	app, db := testutil.SetupApp(t)

	owner, ownerToken := testutil.CreateUser(t, db, "Owner", "owner@test.io", "USER", 1000)
	_, outsiderToken := testutil.CreateUser(t, db, "Outsider", "outsider@test.io", "USER", 1000)

	code, resp := testutil.DoJSON(t, app, "POST", "/teams", ownerToken, map[string]interface{}{
		"name": "Night Owls",
	})
	require.Equal(t, 201, code)
	teamID := uint(testutil.Data(t, resp)["ID"].(float64))

	// Only the owner can request
	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/teams/%d/money-requests", teamID), outsiderToken, map[string]interface{}{
		"memberIds": []uint{owner.ID},
		"amount":    500,
	})
	require.Equal(t, 403, code)

	// Requesting from the owner themselves leaves no valid targets
	code, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/teams/%d/money-requests", teamID), ownerToken, map[string]interface{}{
		"memberIds": []uint{owner.ID},
		"amount":    500,
	})
	require.Equal(t, 400, code)
}
