package ledger

import (
	"errors"
	"time"

	"arena-app/models"

	"gorm.io/gorm"
)

// Record appends one immutable transaction row inside the caller's database
// transaction. A collision on the reference key means the same monetary event
// was already recorded; the caller gets ErrDuplicateReference and the whole
// unit rolls back.
func Record(tx *gorm.DB, txn *models.Transaction) error {
	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = time.Now()
	}
	if txn.OwnerType == "" {
		txn.OwnerType = models.OwnerTypeUser
	}
	if err := tx.Create(txn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

// Finalize moves a PENDING transaction to its terminal status with a
// conditional update guarded on the row still being PENDING. Zero affected
// rows means either the row is gone or a concurrent finalize won; the caller
// re-reads to tell the two apart.
func Finalize(tx *gorm.DB, txnID uint, to models.TransactionStatus, adminID uint, reason string) error {
	if to != models.TransactionStatusCompleted && to != models.TransactionStatusFailed {
		return ErrConflict
	}
	now := time.Now()
	res := tx.Model(&models.Transaction{}).
		Where("id = ? AND is_deleted = false AND status = ?", txnID, models.TransactionStatusPending).
		Updates(map[string]interface{}{
			"status":       to,
			"admin_id":     adminID,
			"reason":       reason,
			"finalized_at": &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyFinalized
	}
	return nil
}
