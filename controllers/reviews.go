package controllers

import (
	"Meeple/middleware"
	models "Meeple/models/postgres"
	"Meeple/utils"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Create a review
// @Description Adds a review for a game, owned by the logged-in user
// @Tags reviews
// @Accept x-www-form-urlencoded
// @Produce json
// @Param game_id formData string true "External game id"
// @Param title formData string true "Review title"
// @Param text formData string true "Review text"
// @Success 201 {object} object{message=string,review=object}
// @Failure 400 {object} object{error=string}
// @Router /auth/reviews [post]
// @Security ApiKeyAuth
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.UsernameKey)
		gameID := strings.TrimSpace(c.PostForm("game_id"))
		title := strings.TrimSpace(c.PostForm("title"))
		text := strings.TrimSpace(c.PostForm("text"))

		if gameID == "" || title == "" || text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "game_id, title and text are required"})
			return
		}

		review := models.Review{
			Title:        title,
			Text:         text,
			GameID:       gameID,
			UserUsername: username,
			Timestamp:    time.Now(),
		}

		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating review"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Review created successfully", "review": review})
	}
}

// @Summary Edit a review
// @Description Updates title and text of a review. Only the owner may edit;
// @Description the original timestamp is kept.
// @Tags reviews
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "Review id"
// @Param title formData string true "New title"
// @Param text formData string true "New text"
// @Success 200 {object} object{message=string,review=object}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/reviews/{id} [put]
// @Security ApiKeyAuth
func UpdateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.UsernameKey)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
			return
		}

		review, err := utils.FindReview(db, uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		if review.UserUsername != username {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own reviews"})
			return
		}

		title := strings.TrimSpace(c.PostForm("title"))
		text := strings.TrimSpace(c.PostForm("text"))
		if title == "" || text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and text are required"})
			return
		}

		// Timestamp stays put: the original post date is what's shown.
		review.Title = title
		review.Text = text
		if err := db.Model(&models.Review{}).Where("id = ?", review.ID).
			Updates(map[string]interface{}{
				"title": title,
				"text":  text,
			}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating review"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully", "review": review})
	}
}

// @Summary Delete a review
// @Description Removes a review permanently. Only the owner may delete.
// @Tags reviews
// @Produce json
// @Param id path int true "Review id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/reviews/{id} [delete]
// @Security ApiKeyAuth
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.UsernameKey)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
			return
		}

		review, err := utils.FindReview(db, uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		if review.UserUsername != username {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own reviews"})
			return
		}

		if err := db.Delete(review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting review"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
	}
}

// @Summary Reviews by user
// @Description Returns every review a user has written, oldest first
// @Tags reviews
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{username=string,reviews=array}
// @Failure 404 {object} object{error=string}
// @Router /users/{username}/reviews [get]
func GetUserReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.FindUser(db, c.Param("username"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		reviews := []models.Review{}
		if err := db.Where("user_username = ?", user.Username).Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reviews"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"username": user.Username, "reviews": reviews})
	}
}
