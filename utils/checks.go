package utils

import (
	"errors"
	"fmt"

	models "Meeple/models/postgres"

	"gorm.io/gorm"
)

// FindUser looks up a user by username.
func FindUser(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	result := db.Where("username = ?", username).First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, result.Error
	}

	return &user, nil
}

// FindReview looks up a review by its id.
func FindReview(db *gorm.DB, id uint) (*models.Review, error) {
	var review models.Review
	result := db.First(&review, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review not found")
		}
		return nil, result.Error
	}

	return &review, nil
}
