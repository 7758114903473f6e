package middleware

import (
	models "Meeple/models/postgres"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UsernameKey is the session and context key holding the acting username.
const UsernameKey = "username"

// AuthRequired gates every mutating route. It resolves the acting user from
// the session cookie first, then from a Bearer token. A session pointing at
// a user that no longer exists counts as anonymous, not as an error.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username := resolveUsername(c, db); username != "" {
			c.Set(UsernameKey, username)
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

func resolveUsername(c *gin.Context, db *gorm.DB) string {
	session := sessions.Default(c)
	if stored, ok := session.Get(UsernameKey).(string); ok && stored != "" {
		if userExists(db, stored) {
			return stored
		}
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		username, err := ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err == nil && userExists(db, username) {
			return username
		}
	}
	return ""
}

func userExists(db *gorm.DB, username string) bool {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
