package models

import (
	"time"

	"gorm.io/gorm"
)

// MoneyRequestStatus is one-way: PENDING -> APPROVED | REJECTED.
type MoneyRequestStatus string

const (
	MoneyRequestPending  MoneyRequestStatus = "PENDING"
	MoneyRequestApproved MoneyRequestStatus = "APPROVED"
	MoneyRequestRejected MoneyRequestStatus = "REJECTED"
)

// TeamMoneyRequest asks one member to contribute an amount to the team
// wallet. Approval debits the member and credits the team atomically.
type TeamMoneyRequest struct {
	gorm.Model
	TeamID        uint               `gorm:"not null;index" json:"teamId"`
	RequestedBy   uint               `gorm:"not null" json:"requestedBy"`   // Team owner
	RequestedFrom uint               `gorm:"not null;index" json:"requestedFrom"` // Responding member
	Amount        int64              `gorm:"not null" json:"amount"`        // Minor units
	Status        MoneyRequestStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Note          string             `gorm:"type:text" json:"note"`
	RespondedAt   *time.Time         `json:"respondedAt,omitempty"`
	IsDeleted     bool               `gorm:"default:false" json:"isDeleted"`

	Team Team `gorm:"foreignKey:TeamID" json:"-"`
}

func (TeamMoneyRequest) TableName() string {
	return "team_money_requests"
}
