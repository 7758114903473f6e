package controllers

import (
	"Meeple/middleware"
	models "Meeple/models/postgres"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Toggle a like
// @Description Likes the game if not yet liked, removes the like otherwise
// @Tags likes
// @Produce json
// @Param game_id path string true "External game id"
// @Success 200 {object} object{game_id=string,liked=bool}
// @Failure 500 {object} object{error=string}
// @Router /auth/likes/{game_id} [post]
// @Security ApiKeyAuth
func ToggleLike(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.UsernameKey)
		gameID := c.Param("game_id")

		// Membership check and mutation share one transaction so a double
		// submit can't end up with two rows for the same (user, game) pair.
		liked := false
		err := db.Transaction(func(tx *gorm.DB) error {
			result := tx.Where("user_username = ? AND game_id = ?", username, gameID).
				Delete(&models.Like{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				return nil
			}
			liked = true
			return tx.Create(&models.Like{UserUsername: username, GameID: gameID}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling like"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"game_id": gameID, "liked": liked})
	}
}

// @Summary List liked games
// @Description Returns the game ids the logged-in user has liked
// @Tags likes
// @Produce json
// @Success 200 {object} object{likes=array}
// @Router /auth/likes [get]
// @Security ApiKeyAuth
func GetLikes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.UsernameKey)

		likes := []string{}
		if err := db.Model(&models.Like{}).
			Where("user_username = ?", username).
			Pluck("game_id", &likes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching likes"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"likes": likes})
	}
}
