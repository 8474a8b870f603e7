package models

import (
	"gorm.io/gorm"
)

// Notification is an audit row for a dispatched in-app notification. Written
// fire-and-forget after a financial operation commits; never part of it.
type Notification struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index" json:"userId"`
	Kind      string `gorm:"type:varchar(50)" json:"kind"` // deposit, withdrawal, room, team, tournament
	Title     string `gorm:"not null" json:"title"`
	Body      string `gorm:"type:text" json:"body"`
	IsRead    bool   `gorm:"default:false" json:"isRead"`
	IsDeleted bool   `gorm:"default:false" json:"isDeleted"`
}
