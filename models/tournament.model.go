package models

import (
	"time"

	"gorm.io/gorm"
)

// TournamentStatus transitions are driven by the scheduler:
// DRAFT -> REGISTRATION_OPEN -> REGISTRATION_CLOSED -> LIVE -> COMPLETED
type TournamentStatus string

const (
	TournamentDraft              TournamentStatus = "DRAFT"
	TournamentRegistrationOpen   TournamentStatus = "REGISTRATION_OPEN"
	TournamentRegistrationClosed TournamentStatus = "REGISTRATION_CLOSED"
	TournamentLive               TournamentStatus = "LIVE"
	TournamentCompleted          TournamentStatus = "COMPLETED"
)

// PaymentStatus for a tournament registration
type PaymentStatus string

const (
	PaymentStatusPaid PaymentStatus = "PAID"
	PaymentStatusFree PaymentStatus = "FREE"
)

type Tournament struct {
	gorm.Model
	Name        string           `gorm:"not null" json:"name"`
	Game        string           `gorm:"not null" json:"game"`
	Description string           `gorm:"type:text" json:"description"`
	BannerImage string           `gorm:"default:''" json:"bannerImage"`
	EntryFee    int64            `gorm:"not null;default:0" json:"entryFee"` // Minor units, paid from team balance
	PrizePool   int64            `gorm:"not null;default:0" json:"prizePool"`
	MaxTeams    int              `gorm:"not null" json:"maxTeams"`
	Status      TournamentStatus `gorm:"type:varchar(30);not null;default:'DRAFT';index" json:"status"`

	RegistrationOpensAt  time.Time `gorm:"not null" json:"registrationOpensAt"`
	RegistrationClosesAt time.Time `gorm:"not null" json:"registrationClosesAt"`
	StartsAt             time.Time `gorm:"not null" json:"startsAt"`

	CreatedBy uint `gorm:"not null" json:"createdBy"`
	IsDeleted bool `gorm:"default:false" json:"isDeleted"`
}

// TournamentRegistration records one team's paid slot. A team registers for a
// given tournament at most once.
type TournamentRegistration struct {
	gorm.Model
	TournamentID  uint          `gorm:"not null;uniqueIndex:idx_tournament_team" json:"tournamentId"`
	TeamID        uint          `gorm:"not null;uniqueIndex:idx_tournament_team" json:"teamId"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	RegisteredBy  uint          `gorm:"not null" json:"registeredBy"`
	IsDeleted     bool          `gorm:"default:false" json:"isDeleted"`

	Tournament Tournament `gorm:"foreignKey:TournamentID" json:"-"`
	Team       Team       `gorm:"foreignKey:TeamID" json:"-"`
}

func (TournamentRegistration) TableName() string {
	return "tournament_registrations"
}
