package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// Reference keys are deterministic for events that must never repeat for the
// same entity and actor, so an accidental duplicate invocation collides on
// the unique index instead of moving money twice. Deposits and withdrawals
// may legitimately repeat for the same user, so they carry a uuid nonce.

func StakeReference(roomID, userID uint) string {
	return fmt.Sprintf("customroom:%d:stake:%d", roomID, userID)
}

func PayoutReference(roomID, userID uint) string {
	return fmt.Sprintf("customroom:%d:payout:%d", roomID, userID)
}

func RoomRefundReference(roomID, userID uint) string {
	return fmt.Sprintf("customroom:%d:refund:%d", roomID, userID)
}

func ContributionReference(requestID, userID uint) string {
	return fmt.Sprintf("moneyrequest:%d:contribution:%d", requestID, userID)
}

func ContributionDebitReference(requestID, userID uint) string {
	return fmt.Sprintf("moneyrequest:%d:debit:%d", requestID, userID)
}

func EntryFeeReference(tournamentID, teamID uint) string {
	return fmt.Sprintf("tournament:%d:entryfee:%d", tournamentID, teamID)
}

func DepositReference(userID uint) string {
	return fmt.Sprintf("deposit:%d:%s", userID, uuid.NewString())
}

func WithdrawalReference(userID uint) string {
	return fmt.Sprintf("withdrawal:%d:%s", userID, uuid.NewString())
}

func AdminAdjustReference(userID uint) string {
	return fmt.Sprintf("adminadjust:%d:%s", userID, uuid.NewString())
}
