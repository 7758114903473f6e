package postgres

/*
 * 'Like' marks a game as favorited by a user. The composite unique index
 * keeps at most one row per (user, game) even under concurrent toggles.
 */
type Like struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	UserUsername string `gorm:"size:50;not null;uniqueIndex:idx_user_game_like"`
	GameID       string `gorm:"size:50;not null;uniqueIndex:idx_user_game_like"`

	// Relationships
	User User `gorm:"foreignKey:UserUsername;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
