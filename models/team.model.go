package models

import (
	"gorm.io/gorm"
)

// TeamMemberRole defines a member's role inside a team
type TeamMemberRole string

const (
	TeamRoleOwner  TeamMemberRole = "OWNER"
	TeamRoleMember TeamMemberRole = "MEMBER"
)

// Team model. Balance is funded only by completed member contributions and
// spent only on tournament entry fees; mutated only via the ledger package.
type Team struct {
	gorm.Model
	Name      string `gorm:"unique;not null"`
	Tag       string `gorm:"size:10;default:''"` // Short clan tag shown in brackets
	LogoImage string `gorm:"default:''"`
	Game      string `gorm:"default:''"`
	OwnerID   uint   `gorm:"not null;index"`
	Balance   int64  `gorm:"not null;default:0"` // Minor units
	IsDeleted bool   `gorm:"default:false"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// TeamMember links a user to a team. A user appears at most once per team.
type TeamMember struct {
	gorm.Model
	TeamID    uint           `gorm:"not null;uniqueIndex:idx_team_user"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_team_user"`
	Role      TeamMemberRole `gorm:"type:varchar(20);default:'MEMBER'"`
	IsDeleted bool           `gorm:"default:false"`

	Team Team `gorm:"foreignKey:TeamID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
