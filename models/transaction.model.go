package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OwnerType says whose balance a transaction affects
type OwnerType string

const (
	OwnerTypeUser OwnerType = "USER"
	OwnerTypeTeam OwnerType = "TEAM"
)

// TransactionType defines the type of wallet transaction
type TransactionType string

const (
	TransactionTypeDeposit            TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal         TransactionType = "WITHDRAWAL"
	TransactionTypeCustomMatchStake   TransactionType = "CUSTOM_MATCH_STAKE"
	TransactionTypeCustomMatchPayout  TransactionType = "CUSTOM_MATCH_PAYOUT"
	TransactionTypeMemberContribution TransactionType = "MEMBER_CONTRIBUTION"
	TransactionTypeTournamentEntryFee TransactionType = "TOURNAMENT_ENTRY_FEE"
	TransactionTypeRefund             TransactionType = "REFUND"
	TransactionTypeAdminCredit        TransactionType = "ADMIN_CREDIT"
	TransactionTypeAdminDebit         TransactionType = "ADMIN_DEBIT"
)

// TransactionStatus defines the status of a transaction. PENDING may move to
// COMPLETED or FAILED exactly once; both are terminal.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is the immutable ledger record behind every balance mutation.
// Reference is a deterministic idempotency key, unique at the store level, so
// a duplicate money movement surfaces as a key collision instead of a silent
// double charge.
type Transaction struct {
	gorm.Model
	OwnerType   OwnerType         `gorm:"type:varchar(10);not null;default:'USER'" json:"ownerType"`
	OwnerID     uint              `gorm:"not null;index" json:"ownerId"`
	Type        TransactionType   `gorm:"type:varchar(50);not null" json:"type"`
	Amount      int64             `gorm:"not null" json:"amount"` // Positive magnitude, minor units
	Status      TransactionStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Reference   string            `gorm:"type:varchar(191);uniqueIndex;not null" json:"reference"`
	Description string            `gorm:"type:text" json:"description"`

	// Deposit details
	Method          string         `gorm:"type:varchar(50)" json:"method"` // UPI, bank-transfer, etc.
	ReceiptImage    string         `gorm:"default:''" json:"receiptImage"`
	GatewayResponse datatypes.JSON `json:"gatewayResponse,omitempty"`

	// Withdrawal details
	AccountNo   string `gorm:"type:varchar(50)" json:"accountNo,omitempty"`
	AccountName string `gorm:"type:varchar(100)" json:"accountName,omitempty"`
	IFSCCode    string `gorm:"type:varchar(20)" json:"ifscCode,omitempty"`

	// Admin adjudication details
	AdminID     uint       `gorm:"default:0" json:"adminId,omitempty"`
	Reason      string     `gorm:"type:text" json:"reason,omitempty"`
	FinalizedAt *time.Time `json:"finalizedAt,omitempty"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`
	IsDeleted       bool      `gorm:"default:false" json:"isDeleted"`
}

func (Transaction) TableName() string {
	return "wallet_transactions"
}
