package postgres

import (
	"time"
)

/*
 * 'Review' is a user-authored review of a game in the external catalog.
 * Timestamp is the creation time and is never touched by edits.
 */
type Review struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Title        string    `gorm:"size:100;not null"`
	Text         string    `gorm:"not null"`
	GameID       string    `gorm:"size:50;not null;index"`
	UserUsername string    `gorm:"size:50;not null;index"`
	Timestamp    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	User User `gorm:"foreignKey:UserUsername;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
