package controllers_test

import (
	models "Meeple/models/postgres"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReviewLifecycle(t *testing.T) {
	db := setupTestDB(t)
	r, fc := setupRouter(t, db)
	registerUser(t, r, "alice", "alice@x.com", "secretpw1")
	registerUser(t, r, "bob", "bob@x.com", "secretpw1")
	aliceToken, _ := loginUser(t, r, "alice", "secretpw1")
	bobToken, _ := loginUser(t, r, "bob", "secretpw1")

	// The detail page looks the game up by id before attaching reviews
	fc.searchFunc = func(q url.Values) (interface{}, int) {
		return map[string]interface{}{
			"games": []map[string]interface{}{
				{"id": "G1", "name": "Gloomhaven", "rank": 1},
			},
			"count": 1,
		}, http.StatusOK
	}

	var reviewID uint
	var createdAt time.Time

	t.Run("Create review", func(t *testing.T) {
		w := doForm(r, http.MethodPost, "/auth/reviews", url.Values{
			"game_id": {"G1"},
			"title":   {"Great"},
			"text":    {"fun game"},
		}, aliceToken, "")
		assert.Equal(t, http.StatusCreated, w.Code)

		var review models.Review
		assert.NoError(t, db.Where("game_id = ?", "G1").First(&review).Error)
		assert.Equal(t, "Great", review.Title)
		assert.Equal(t, "alice", review.UserUsername)
		assert.False(t, review.Timestamp.IsZero())
		reviewID = review.ID
		createdAt = review.Timestamp
	})

	t.Run("Review shows up on the game page", func(t *testing.T) {
		w := doGet(r, "/games/game/G1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		reviews := body["reviews"].([]interface{})
		assert.Len(t, reviews, 1)
		first := reviews[0].(map[string]interface{})
		assert.Equal(t, "Great", first["Title"])
	})

	t.Run("Owner edit updates text but not timestamp", func(t *testing.T) {
		w := doForm(r, http.MethodPut, fmt.Sprintf("/auth/reviews/%d", reviewID), url.Values{
			"title": {"Greater"},
			"text":  {"more fun"},
		}, aliceToken, "")
		assert.Equal(t, http.StatusOK, w.Code)

		var review models.Review
		assert.NoError(t, db.First(&review, reviewID).Error)
		assert.Equal(t, "Greater", review.Title)
		assert.Equal(t, "more fun", review.Text)
		assert.True(t, review.Timestamp.Equal(createdAt))
	})

	t.Run("Non-owner edit is forbidden and changes nothing", func(t *testing.T) {
		w := doForm(r, http.MethodPut, fmt.Sprintf("/auth/reviews/%d", reviewID), url.Values{
			"title": {"Hijacked"},
			"text":  {"nope"},
		}, bobToken, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		var review models.Review
		assert.NoError(t, db.First(&review, reviewID).Error)
		assert.Equal(t, "Greater", review.Title)
	})

	t.Run("Non-owner delete is forbidden", func(t *testing.T) {
		w := doForm(r, http.MethodDelete, fmt.Sprintf("/auth/reviews/%d", reviewID), nil, bobToken, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		var count int64
		db.Model(&models.Review{}).Where("id = ?", reviewID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Owner delete removes the row", func(t *testing.T) {
		w := doForm(r, http.MethodDelete, fmt.Sprintf("/auth/reviews/%d", reviewID), nil, aliceToken, "")
		assert.Equal(t, http.StatusOK, w.Code)

		detail := doGet(r, "/games/game/G1", "")
		assert.Equal(t, http.StatusOK, detail.Code)
		body := decodeBody(t, detail)
		assert.Empty(t, body["reviews"])
	})
}

func TestReviewValidation(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)
	registerUser(t, r, "carol", "carol@x.com", "secretpw1")
	token, _ := loginUser(t, r, "carol", "secretpw1")

	t.Run("Missing fields rejected", func(t *testing.T) {
		w := doForm(r, http.MethodPost, "/auth/reviews", url.Values{
			"game_id": {"G1"},
			"title":   {""},
			"text":    {"body only"},
		}, token, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Anonymous create rejected", func(t *testing.T) {
		w := doForm(r, http.MethodPost, "/auth/reviews", url.Values{
			"game_id": {"G1"},
			"title":   {"t"},
			"text":    {"x"},
		}, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Edit of a missing review is not found", func(t *testing.T) {
		w := doForm(r, http.MethodPut, "/auth/reviews/9999", url.Values{
			"title": {"t"},
			"text":  {"x"},
		}, token, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLatestReviewsOrdering(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)
	registerUser(t, r, "dave", "dave@x.com", "secretpw1")

	// Eleven reviews at strictly increasing timestamps
	base := time.Now().Add(-24 * time.Hour)
	for i := 1; i <= 11; i++ {
		assert.NoError(t, db.Create(&models.Review{
			Title:        fmt.Sprintf("Review %d", i),
			Text:         "text",
			GameID:       fmt.Sprintf("G%d", i),
			UserUsername: "dave",
			Timestamp:    base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	w := doGet(r, "/users/dave", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	latest := body["latest_reviews"].([]interface{})
	assert.Len(t, latest, 10)

	// Most recent first, the oldest (Review 1) cut off
	titles := make([]string, 0, len(latest))
	for _, item := range latest {
		titles = append(titles, item.(map[string]interface{})["Title"].(string))
	}
	assert.Equal(t, "Review 11", titles[0])
	assert.Equal(t, "Review 2", titles[9])
	assert.NotContains(t, titles, "Review 1")

	t.Run("Full history keeps insertion order", func(t *testing.T) {
		w := doGet(r, "/users/dave/reviews", "")
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		reviews := body["reviews"].([]interface{})
		assert.Len(t, reviews, 11)
		first := reviews[0].(map[string]interface{})
		assert.Equal(t, "Review 1", first["Title"])
	})
}
