package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomStatus is the custom-room wager state machine:
// WAITING_JOIN -> READY_TO_START -> STARTED -> UNDER_REVIEW -> RESOLVED,
// with CANCELLED reachable only from WAITING_JOIN.
type RoomStatus string

const (
	RoomStatusWaitingJoin  RoomStatus = "WAITING_JOIN"
	RoomStatusReadyToStart RoomStatus = "READY_TO_START"
	RoomStatusStarted      RoomStatus = "STARTED"
	RoomStatusUnderReview  RoomStatus = "UNDER_REVIEW"
	RoomStatusResolved     RoomStatus = "RESOLVED"
	RoomStatusCancelled    RoomStatus = "CANCELLED"
)

// RoomSide identifies a participant of a room
type RoomSide string

const (
	RoomSideCreator  RoomSide = "CREATOR"
	RoomSideOpponent RoomSide = "OPPONENT"
)

// CustomRoom is a two-party wager. Each side's stake is debited exactly once
// (creator at creation, opponent at join) and held until an admin resolves
// the room; the payout is credited exactly once at resolution.
type CustomRoom struct {
	gorm.Model
	CreatorID  uint       `gorm:"not null;index" json:"creatorId"`
	OpponentID *uint      `gorm:"index" json:"opponentId"`
	Game       string     `gorm:"default:''" json:"game"`
	Rounds     int        `gorm:"default:1" json:"rounds"`
	EntryFee   int64      `gorm:"not null" json:"entryFee"` // Minor units, staked by each side
	Odds       float64    `gorm:"not null;default:1.8" json:"odds"`
	Payout     int64      `gorm:"not null" json:"payout"` // Precomputed EntryFee * Odds
	Status     RoomStatus `gorm:"type:varchar(20);not null;default:'WAITING_JOIN';index" json:"status"`
	RoomMaker  RoomSide   `gorm:"type:varchar(10);not null;default:'CREATOR'" json:"roomMaker"`

	// In-game room credentials, set by the room maker once both sides are ready
	RoomCode     string `gorm:"default:''" json:"roomCode"`
	RoomPassword string `gorm:"default:''" json:"roomPassword"`

	CreatorReady  bool `gorm:"default:false" json:"creatorReady"`
	OpponentReady bool `gorm:"default:false" json:"opponentReady"`

	// Result evidence, submitted by the room maker
	WinnerSide  RoomSide       `gorm:"type:varchar(10);default:''" json:"winnerSide"`
	ResultImage string         `gorm:"default:''" json:"resultImage"`
	ResultMeta  datatypes.JSON `json:"resultMeta,omitempty"`

	ResolvedBy uint       `gorm:"default:0" json:"resolvedBy"` // Admin who resolved
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	IsDeleted  bool       `gorm:"default:false" json:"isDeleted"`

	Creator User `gorm:"foreignKey:CreatorID" json:"-"`
}

func (CustomRoom) TableName() string {
	return "custom_rooms"
}

// WinnerID returns the user id of the declared winner, or 0 when the winner
// side is unset or the opponent slot is empty.
func (r *CustomRoom) WinnerID() uint {
	switch r.WinnerSide {
	case RoomSideCreator:
		return r.CreatorID
	case RoomSideOpponent:
		if r.OpponentID != nil {
			return *r.OpponentID
		}
	}
	return 0
}
