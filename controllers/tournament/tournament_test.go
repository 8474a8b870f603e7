package tournamentController_test

import (
	"testing"
	"time"

	"arena-app/models"
	"arena-app/testutil"

	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

func openTournament(t *testing.T, db *gorm.DB, entryFee int64, maxTeams int) models.Tournament {
	t.Helper()
	tournament := models.Tournament{
		Name:                 "Summer Clash",
		Game:                 "bgmi",
		EntryFee:             entryFee,
		MaxTeams:             maxTeams,
		Status:               models.TournamentRegistrationOpen,
		RegistrationOpensAt:  time.Now().Add(-time.Hour),
		RegistrationClosesAt: time.Now().Add(time.Hour),
		StartsAt:             time.Now().Add(2 * time.Hour),
		CreatedBy:            1,
	}
	require.NoError(t, db.Create(&tournament).Error)
	return tournament
}

func TestRegisterTeamDebitsEntryFee(t *testing.T) {
	app, db := testutil.SetupApp(t)

	_, ownerToken := testutil.CreateUser(t, db, "Owner", "owner@test.io", "USER", 0)
	tournament := openTournament(t, db, 500, 16)

	code, resp := testutil.DoJSON(t, app, "POST", "/teams", ownerToken, map[string]interface{}{
		"name": "Night Owls",
	})
	require.Equal(t, 201, code)
	teamID := uint(testutil.Data(t, resp)["ID"].(float64))
	require.NoError(t, db.Model(&models.Team{}).Where("id = ?", teamID).Update("balance", 800).Error)

	code, resp = testutil.DoJSON(t, app, "POST", "/tournaments/register", ownerToken, map[string]interface{}{
		"tournamentId": tournament.ID,
		"teamId":       teamID,
	})
	require.Equal(t, 201, code)
	require.Equal(t, string(models.PaymentStatusPaid), testutil.Data(t, resp)["paymentStatus"].(string))

	var team models.Team
	require.NoError(t, db.First(&team, teamID).Error)
	require.Equal(t, int64(300), team.Balance)

	var fee models.Transaction
	require.NoError(t, db.Where("owner_type = ? AND owner_id = ?", models.OwnerTypeTeam, teamID).First(&fee).Error)
	require.Equal(t, models.TransactionTypeTournamentEntryFee, fee.Type)
	require.Equal(t, int64(500), fee.Amount)

	// Registering the same team again is rejected without a second debit
	code, _ = testutil.DoJSON(t, app, "POST", "/tournaments/register", ownerToken, map[string]interface{}{
		"tournamentId": tournament.ID,
		"teamId":       teamID,
	})
	require.Equal(t, 409, code)

	require.NoError(t, db.First(&team, teamID).Error)
	require.Equal(t, int64(300), team.Balance)
}

func TestRegisterTeamTournamentFull(t *testing.T) {
	app, db := testutil.SetupApp(t)

	_, firstToken := testutil.CreateUser(t, db, "First", "first@test.io", "USER", 0)
	_, secondToken := testutil.CreateUser(t, db, "Second", "second@test.io", "USER", 0)
	tournament := openTournament(t, db, 500, 1)

	code, resp := testutil.DoJSON(t, app, "POST", "/teams", firstToken, map[string]interface{}{
		"name": "Alpha",
	})
	require.Equal(t, 201, code)
	firstTeam := uint(testutil.Data(t, resp)["ID"].(float64))
	require.NoError(t, db.Model(&models.Team{}).Where("id = ?", firstTeam).Update("balance", 1000).Error)

	code, resp = testutil.DoJSON(t, app, "POST", "/teams", secondToken, map[string]interface{}{
		"name": "Bravo",
	})
	require.Equal(t, 201, code)
	secondTeam := uint(testutil.Data(t, resp)["ID"].(float64))
	require.NoError(t, db.Model(&models.Team{}).Where("id = ?", secondTeam).Update("balance", 1000).Error)

	code, _ = testutil.DoJSON(t, app, "POST", "/tournaments/register", firstToken, map[string]interface{}{
		"tournamentId": tournament.ID,
		"teamId":       firstTeam,
	})
	require.Equal(t, 201, code)

	// The single slot is gone; the loser's balance is untouched
	code, resp = testutil.DoJSON(t, app, "POST", "/tournaments/register", secondToken, map[string]interface{}{
		"tournamentId": tournament.ID,
		"teamId":       secondTeam,
	})
	require.Equal(t, 409, code)
	require.Contains(t, resp["message"], "full")

	var team models.Team
	require.NoError(t, db.First(&team, secondTeam).Error)
	require.Equal(t, int64(1000), team.Balance)
}

func TestRegisterTeamGuards(t *testing.T) {
	app, db := testutil.SetupApp(t)

	_, ownerToken := testutil.CreateUser(t, db, "Owner", "owner@test.io", "USER", 0)
	_, outsiderToken := testutil.CreateUser(t, db, "Outsider", "outsider@test.io", "USER", 0)

	code, resp := testutil.DoJSON(t, app, "POST", "/teams", ownerToken, map[string]interface{}{
		"name": "Night Owls",
	})
	require.Equal(t, 201, code)
	teamID := uint(testutil.Data(t, resp)["ID"].(float64))
	require.NoError(t, db.Model(&models.Team{}).Where("id = ?", teamID).Update("balance", 100).Error)

	// Registration not open yet
	draft := openTournament(t, db, 500, 16)
	require.NoError(t, db.Model(&models.Tournament{}).Where("id = ?", draft.ID).
		Update("status", models.TournamentDraft).Error)

	code, _ = testutil.DoJSON(t, app, "POST", "/tournaments/register", ownerToken, map[string]interface{}{
		"tournamentId": draft.ID,
		"teamId":       teamID,
	})
	require.Equal(t, 409, code)

	// Only the team owner may register the team
	open := openTournament(t, db, 0, 16)
	code, _ = testutil.DoJSON(t, app, "POST", "/tournaments/register", outsiderToken, map[string]interface{}{
		"tournamentId": open.ID,
		"teamId":       teamID,
	})
	require.Equal(t, 403, code)

	// Team wallet cannot cover the fee
	paid := openTournament(t, db, 500, 16)
	code, resp = testutil.DoJSON(t, app, "POST", "/tournaments/register", ownerToken, map[string]interface{}{
		"tournamentId": paid.ID,
		"teamId":       teamID,
	})
	require.Equal(t, 400, code)
	require.Contains(t, resp["message"], "Insufficient team balance")

	var count int64
	db.Model(&models.TournamentRegistration{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestFreeTournamentRegistration(t *testing.T) {
	app, db := testutil.SetupApp(t)

	_, ownerToken := testutil.CreateUser(t, db, "Owner", "owner@test.io", "USER", 0)
	tournament := openTournament(t, db, 0, 16)

	code, resp := testutil.DoJSON(t, app, "POST", "/teams", ownerToken, map[string]interface{}{
		"name": "Night Owls",
	})
	require.Equal(t, 201, code)
	teamID := uint(testutil.Data(t, resp)["ID"].(float64))

	code, resp = testutil.DoJSON(t, app, "POST", "/tournaments/register", ownerToken, map[string]interface{}{
		"tournamentId": tournament.ID,
		"teamId":       teamID,
	})
	require.Equal(t, 201, code)
	require.Equal(t, string(models.PaymentStatusFree), testutil.Data(t, resp)["paymentStatus"].(string))

	// Free registration writes no ledger row
	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	require.Equal(t, int64(0), count)
}
