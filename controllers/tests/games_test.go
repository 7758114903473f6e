package controllers_test

import (
	models "Meeple/models/postgres"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopGames(t *testing.T) {
	db := setupTestDB(t)
	r, fc := setupRouter(t, db)

	assert.NoError(t, db.Create(&models.Category{ID: "cat1", Name: "Strategy"}).Error)
	assert.NoError(t, db.Create(&models.Category{ID: "cat2", Name: "Economic"}).Error)

	fc.searchFunc = func(q url.Values) (interface{}, int) {
		assert.Equal(t, "rank", q.Get("order_by"))
		assert.Equal(t, "12", q.Get("limit"))
		assert.Equal(t, "test-client-id", q.Get("client_id"))
		return map[string]interface{}{
			"games": []map[string]interface{}{
				{
					"id": "G1", "name": "Gloomhaven", "rank": 1,
					"categories": []map[string]string{{"id": "cat1"}, {"id": "cat2"}},
				},
				{"id": "G2", "name": "Azul", "rank": 2},
			},
			"count": 2,
		}, http.StatusOK
	}

	w := doGet(r, "/games/top_games", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.Equal(t, "Rated", body["type"])
	assert.Len(t, body["games"], 2)

	categories := body["categories"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{"Strategy", "Economic"}, categories["Gloomhaven"])
	assert.Empty(t, categories["Azul"])
}

func TestGamesByCategory(t *testing.T) {
	db := setupTestDB(t)
	r, fc := setupRouter(t, db)

	assert.NoError(t, db.Create(&models.Category{ID: "cat1", Name: "Strategy"}).Error)

	t.Run("Unknown category name", func(t *testing.T) {
		w := doGet(r, "/games/category/Bogus", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Category name resolved to upstream id", func(t *testing.T) {
		fc.searchFunc = func(q url.Values) (interface{}, int) {
			assert.Equal(t, "cat1", q.Get("categories"))
			return map[string]interface{}{"games": []map[string]interface{}{}, "count": 0}, http.StatusOK
		}

		w := doGet(r, "/games/category/Strategy", "")
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Strategy", body["type"])
	})
}

func TestGamesByPlayers(t *testing.T) {
	db := setupTestDB(t)
	r, fc := setupRouter(t, db)

	t.Run("Minimum player count", func(t *testing.T) {
		fc.searchFunc = func(q url.Values) (interface{}, int) {
			assert.Equal(t, "4", q.Get("min_players"))
			return map[string]interface{}{"games": []map[string]interface{}{}, "count": 0}, http.StatusOK
		}

		w := doGet(r, "/games/players/4", "")
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "4+ Players", body["type"])
	})

	t.Run("Player range", func(t *testing.T) {
		fc.searchFunc = func(q url.Values) (interface{}, int) {
			assert.Equal(t, "2", q.Get("min_players"))
			assert.Equal(t, "6", q.Get("max_players"))
			return map[string]interface{}{"games": []map[string]interface{}{}, "count": 0}, http.StatusOK
		}

		w := doGet(r, "/games/players/2/6", "")
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "2-6 Players", body["type"])
	})

	t.Run("Invalid counts rejected", func(t *testing.T) {
		w := doGet(r, "/games/players/zero", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doGet(r, "/games/players/6/2", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSearchGames(t *testing.T) {
	db := setupTestDB(t)
	r, fc := setupRouter(t, db)

	t.Run("Fuzzy name search", func(t *testing.T) {
		fc.searchFunc = func(q url.Values) (interface{}, int) {
			assert.Equal(t, "azul", q.Get("name"))
			assert.Equal(t, "true", q.Get("fuzzy_match"))
			return map[string]interface{}{"games": []map[string]interface{}{}, "count": 0}, http.StatusOK
		}

		w := doGet(r, "/games/search?query=azul", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Empty query falls back to default listing", func(t *testing.T) {
		fc.searchFunc = func(q url.Values) (interface{}, int) {
			assert.Empty(t, q.Get("name"))
			assert.Empty(t, q.Get("fuzzy_match"))
			return map[string]interface{}{"games": []map[string]interface{}{}, "count": 0}, http.StatusOK
		}

		w := doGet(r, "/games/search?query=", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUpstreamFailure(t *testing.T) {
	db := setupTestDB(t)
	r, fc := setupRouter(t, db)

	fc.searchFunc = func(q url.Values) (interface{}, int) {
		return map[string]interface{}{"error": "upstream exploded"}, http.StatusInternalServerError
	}

	w := doGet(r, "/games/top_games", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGameDetailNotFound(t *testing.T) {
	db := setupTestDB(t)
	r, fc := setupRouter(t, db)

	fc.searchFunc = func(q url.Values) (interface{}, int) {
		assert.Equal(t, "missing", q.Get("ids"))
		return map[string]interface{}{"games": []map[string]interface{}{}, "count": 0}, http.StatusOK
	}

	w := doGet(r, "/games/game/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHomeRedirect(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)

	w := doGet(r, "/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/games/top_games", w.Header().Get("Location"))
}
