package ledger_test

import (
	"strings"
	"testing"

	"arena-app/database"
	"arena-app/ledger"
	"arena-app/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDb(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectTestDb(name)
	require.NoError(t, err)
	return db
}

func TestDebitUserGuard(t *testing.T) {
	db := setupDb(t)

	user := models.User{Name: "A", Email: "a@test.io", Password: "x", Balance: 100}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, ledger.DebitUser(db, user.ID, 60))

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Equal(t, int64(40), fresh.Balance)

	// Second debit exceeds the remaining balance
	err := ledger.DebitUser(db, user.ID, 60)
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Equal(t, int64(40), fresh.Balance)
}

func TestCreditUser(t *testing.T) {
	db := setupDb(t)

	user := models.User{Name: "B", Email: "b@test.io", Password: "x", Balance: 0}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, ledger.CreditUser(db, user.ID, 500))

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Equal(t, int64(500), fresh.Balance)

	require.ErrorIs(t, ledger.CreditUser(db, 9999, 500), ledger.ErrOwnerNotFound)
}

func TestTeamBalanceGuard(t *testing.T) {
	db := setupDb(t)

	owner := models.User{Name: "O", Email: "o@test.io", Password: "x"}
	require.NoError(t, db.Create(&owner).Error)
	team := models.Team{Name: "Squad", OwnerID: owner.ID, Balance: 30}
	require.NoError(t, db.Create(&team).Error)

	require.ErrorIs(t, ledger.DebitTeam(db, team.ID, 50), ledger.ErrInsufficientBalance)
	require.NoError(t, ledger.CreditTeam(db, team.ID, 20))
	require.NoError(t, ledger.DebitTeam(db, team.ID, 50))

	var fresh models.Team
	require.NoError(t, db.First(&fresh, team.ID).Error)
	require.Equal(t, int64(0), fresh.Balance)
}

func TestRecordDuplicateReference(t *testing.T) {
	db := setupDb(t)

	user := models.User{Name: "C", Email: "c@test.io", Password: "x", Balance: 100}
	require.NoError(t, db.Create(&user).Error)

	first := models.Transaction{
		OwnerID:   user.ID,
		Type:      models.TransactionTypeCustomMatchStake,
		Amount:    100,
		Status:    models.TransactionStatusCompleted,
		Reference: ledger.StakeReference(7, user.ID),
	}
	require.NoError(t, ledger.Record(db, &first))

	second := models.Transaction{
		OwnerID:   user.ID,
		Type:      models.TransactionTypeCustomMatchStake,
		Amount:    100,
		Status:    models.TransactionStatusCompleted,
		Reference: ledger.StakeReference(7, user.ID),
	}
	require.ErrorIs(t, ledger.Record(db, &second), ledger.ErrDuplicateReference)

	var count int64
	db.Model(&models.Transaction{}).Where("reference = ?", first.Reference).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestFinalizeOneWay(t *testing.T) {
	db := setupDb(t)

	user := models.User{Name: "D", Email: "d@test.io", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	txn := models.Transaction{
		OwnerID:   user.ID,
		Type:      models.TransactionTypeDeposit,
		Amount:    500,
		Status:    models.TransactionStatusPending,
		Reference: ledger.DepositReference(user.ID),
	}
	require.NoError(t, ledger.Record(db, &txn))

	require.NoError(t, ledger.Finalize(db, txn.ID, models.TransactionStatusCompleted, 1, ""))

	var fresh models.Transaction
	require.NoError(t, db.First(&fresh, txn.ID).Error)
	require.Equal(t, models.TransactionStatusCompleted, fresh.Status)
	require.NotNil(t, fresh.FinalizedAt)

	// Terminal states cannot be finalized again
	err := ledger.Finalize(db, txn.ID, models.TransactionStatusFailed, 1, "changed my mind")
	require.ErrorIs(t, err, ledger.ErrAlreadyFinalized)

	require.NoError(t, db.First(&fresh, txn.ID).Error)
	require.Equal(t, models.TransactionStatusCompleted, fresh.Status)
}

func TestAtomicUnitRollsBackTogether(t *testing.T) {
	db := setupDb(t)

	user := models.User{Name: "E", Email: "e@test.io", Password: "x", Balance: 50}
	require.NoError(t, db.Create(&user).Error)

	// Debit succeeds, ledger row collides: the whole unit must roll back
	taken := models.Transaction{
		OwnerID:   user.ID,
		Type:      models.TransactionTypeCustomMatchStake,
		Amount:    10,
		Status:    models.TransactionStatusCompleted,
		Reference: "customroom:1:stake:1",
	}
	require.NoError(t, db.Create(&taken).Error)

	err := database.WithSerializableTx(func(tx *gorm.DB) error {
		if err := ledger.DebitUser(tx, user.ID, 50); err != nil {
			return err
		}
		return ledger.Record(tx, &models.Transaction{
			OwnerID:   user.ID,
			Type:      models.TransactionTypeCustomMatchStake,
			Amount:    50,
			Status:    models.TransactionStatusCompleted,
			Reference: "customroom:1:stake:1",
		})
	})
	require.ErrorIs(t, err, ledger.ErrDuplicateReference)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Equal(t, int64(50), fresh.Balance, "debit must roll back with the failed ledger write")
}
