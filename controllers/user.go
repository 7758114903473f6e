package controllers

import (
	"Meeple/middleware"
	models "Meeple/models/postgres"
	"Meeple/utils"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// invalidCredentials is deliberately the same for an unknown username and a
// wrong password, so the login surface can't be used to enumerate users.
const invalidCredentials = "Invalid username or password!"

// @Summary Register a new user
// @Description Creates a user account. Registration does not log the user in.
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 201 {object} object{message=string,user=object{username=string,email=string}}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		email := strings.TrimSpace(c.PostForm("email"))
		password := c.PostForm("password")

		if username == "" || email == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}

		user := models.User{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
			MemberSince:  time.Now(),
		}

		if err := db.Create(&user).Error; err != nil {
			// Uniqueness violations on username or email both land here.
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"user": gin.H{
				"username": user.Username,
				"email":    user.Email,
			},
		})
	}
}

// @Summary Log in
// @Description Verifies credentials, sets the session cookie and returns a bearer token
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} object{message=string,token=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := c.PostForm("username")
		password := c.PostForm("password")

		if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
			return
		}

		// Logging in on top of an existing session works, but warn about it.
		var warning string
		if prev, ok := session.Get(middleware.UsernameKey).(string); ok && prev != "" {
			warning = "Already logged in as " + prev + ", session replaced"
		}

		session.Set(middleware.UsernameKey, user.Username)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}

		token, err := middleware.GenerateToken(user.Username)
		if err != nil {
			log.Printf("Error generating token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		resp := gin.H{"message": "Logged in successfully", "token": token}
		if warning != "" {
			resp["warning"] = warning
		}
		c.JSON(http.StatusOK, resp)
	}
}

// Logout deletes the session associated with the username key
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get(middleware.UsernameKey)
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete(middleware.UsernameKey)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Public user profile
// @Description Returns a user's latest 10 reviews and liked game ids
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{username=string,member_since=string,latest_reviews=array,likes=array}
// @Failure 404 {object} object{error=string}
// @Router /users/{username} [get]
func GetUserPublicInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.FindUser(db, c.Param("username"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var latest []models.Review
		if err := db.Where("user_username = ?", user.Username).
			Order("timestamp DESC").Limit(10).Find(&latest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reviews"})
			return
		}

		likes := []string{}
		if err := db.Model(&models.Like{}).
			Where("user_username = ?", user.Username).
			Pluck("game_id", &likes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching likes"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username":       user.Username,
			"member_since":   user.MemberSince,
			"latest_reviews": latest,
			"likes":          likes,
		})
	}
}

// @Summary Private user profile
// @Description Returns the logged-in user's account details
// @Tags users
// @Produce json
// @Success 200 {object} object{username=string,email=string,member_since=string,settings=object}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetUserPrivateInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.FindUser(db, c.GetString(middleware.UsernameKey))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username":     user.Username,
			"email":        user.Email,
			"member_since": user.MemberSince,
			"settings":     user.Settings,
		})
	}
}

// @Summary Update user info
// @Description Changes the username and/or display settings of the logged-in user
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string false "New username"
// @Param settings formData string false "Settings JSON blob"
// @Success 200 {object} object{message=string,username=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/update [patch]
// @Security ApiKeyAuth
func UpdateUserInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.UsernameKey)
		newUsername := strings.TrimSpace(c.PostForm("username"))
		settings := c.PostForm("settings")

		if newUsername == "" && settings == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}

		if newUsername != "" && newUsername != username {
			var count int64
			db.Model(&models.User{}).Where("username = ?", newUsername).Count(&count)
			if count > 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
				return
			}
		} else {
			newUsername = username
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if newUsername != username {
				// The username is the primary key; the FK is ON UPDATE
				// CASCADE so owned rows follow it. The explicit child
				// updates cover stores that don't enforce the cascade.
				if err := tx.Model(&models.User{}).
					Where("username = ?", username).
					Update("username", newUsername).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Review{}).
					Where("user_username = ?", username).
					Update("user_username", newUsername).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Like{}).
					Where("user_username = ?", username).
					Update("user_username", newUsername).Error; err != nil {
					return err
				}
			}
			if settings != "" {
				if err := tx.Model(&models.User{}).
					Where("username = ?", newUsername).
					Update("settings", datatypes.JSON(settings)).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
			return
		}

		if newUsername != username {
			session := sessions.Default(c)
			session.Set(middleware.UsernameKey, newUsername)
			if err := session.Save(); err != nil {
				log.Printf("Error refreshing session after rename: %v", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "username": newUsername})
	}
}

// @Summary Delete account
// @Description Deletes the logged-in user together with all their likes and reviews
// @Tags users
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/delete [delete]
// @Security ApiKeyAuth
func DeleteAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.UsernameKey)

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_username = ?", username).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_username = ?", username).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			return tx.Where("username = ?", username).Delete(&models.User{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting account"})
			return
		}

		session := sessions.Default(c)
		session.Delete(middleware.UsernameKey)
		if err := session.Save(); err != nil {
			log.Printf("Error clearing session after account deletion: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
