package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'User' is the root entity of the site. A user exclusively owns its
 * Likes and Reviews; deleting the user must take both with it.
 */
type User struct {
	Username     string         `gorm:"primaryKey;size:50;not null"`
	Email        string         `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string         `gorm:"size:255;not null"`
	MemberSince  time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	Settings     datatypes.JSON `gorm:"default:'{}'"`

	// Relationships
	Likes   []Like   `gorm:"foreignKey:UserUsername;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Reviews []Review `gorm:"foreignKey:UserUsername;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
