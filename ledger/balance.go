package ledger

import (
	"arena-app/models"

	"gorm.io/gorm"
)

// The balance mutators below are the only code allowed to write User.Balance
// or Team.Balance. Every debit is a single conditional UPDATE whose
// affected-row count is the guard signal: the balance check and the write
// happen at the database, never as a read-then-write in application code, so
// two concurrent debits cannot both pass the check.

// DebitUser subtracts amount from a user's balance, guarded on the balance
// covering it. Returns ErrInsufficientBalance when the guard fails.
func DebitUser(tx *gorm.DB, userID uint, amount int64) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND is_deleted = false AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// CreditUser adds amount to a user's balance.
func CreditUser(tx *gorm.DB, userID uint, amount int64) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND is_deleted = false", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOwnerNotFound
	}
	return nil
}

// DebitTeam subtracts amount from a team's balance, guarded on the balance
// covering it.
func DebitTeam(tx *gorm.DB, teamID uint, amount int64) error {
	res := tx.Model(&models.Team{}).
		Where("id = ? AND is_deleted = false AND balance >= ?", teamID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// CreditTeam adds amount to a team's balance.
func CreditTeam(tx *gorm.DB, teamID uint, amount int64) error {
	res := tx.Model(&models.Team{}).
		Where("id = ? AND is_deleted = false", teamID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOwnerNotFound
	}
	return nil
}
