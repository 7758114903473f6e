package controllers

import (
	models "Meeple/models/postgres"
	"Meeple/services/catalog"
	"Meeple/services/redis"
	redis_utils "Meeple/services/redis/utils"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	searchPageSize = 12
	videoLimit     = 6
	imageLimit     = 10
	cacheTTL       = 10 * time.Minute
)

// Home redirects to the top games listing
func Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/games/top_games")
}

// cachedInto reads a cached payload into dest. A nil cache or a cache error
// counts as a miss; the error is logged, never surfaced.
func cachedInto(cache *redis.RedisClient, key string, dest interface{}) (bool, error) {
	if cache == nil {
		return false, nil
	}
	hit, err := cache.GetCached(key, dest)
	if err != nil {
		log.Printf("Cache read failed for %s: %v", key, err)
		return false, err
	}
	return hit, nil
}

// searchCached runs a catalog search, going through the Redis cache when one
// is configured. Cache errors are logged and treated as misses.
func searchCached(c *gin.Context, client *catalog.Client, cache *redis.RedisClient, key string, f catalog.Filters) ([]catalog.Game, error) {
	if cache != nil {
		var games []catalog.Game
		hit, err := cache.GetCached(key, &games)
		if err != nil {
			log.Printf("Cache read failed for %s: %v", key, err)
		} else if hit {
			return games, nil
		}
	}

	games, _, err := client.Search(c.Request.Context(), f)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.SetCached(key, games, cacheTTL); err != nil {
			log.Printf("Cache write failed for %s: %v", key, err)
		}
	}
	return games, nil
}

func renderGameList(c *gin.Context, db *gorm.DB, games []catalog.Game, listType string) {
	c.JSON(http.StatusOK, gin.H{
		"type":       listType,
		"games":      games,
		"categories": catalog.CategoryNames(db, games),
	})
}

// @Summary Top ranked games
// @Description Returns the top 12 games ordered by rank
// @Tags games
// @Produce json
// @Success 200 {object} object{type=string,games=array,categories=object}
// @Failure 502 {object} object{error=string}
// @Router /games/top_games [get]
func TopGames(db *gorm.DB, client *catalog.Client, cache *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		games, err := searchCached(c, client, cache,
			redis_utils.FormatSearchKey("top_games"),
			catalog.Filters{OrderBy: "rank", Limit: searchPageSize})
		if err != nil {
			log.Printf("Catalog search failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Game catalog unavailable"})
			return
		}
		renderGameList(c, db, games, "Rated")
	}
}

// @Summary Top games in a category
// @Description Returns the top 12 games in the named category
// @Tags games
// @Produce json
// @Param category_name path string true "Category display name"
// @Success 200 {object} object{type=string,games=array,categories=object}
// @Failure 404 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /games/category/{category_name} [get]
func GamesByCategory(db *gorm.DB, client *catalog.Client, cache *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("category_name")

		var category models.Category
		if err := db.Where("name = ?", name).First(&category).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		games, err := searchCached(c, client, cache,
			redis_utils.FormatSearchKey("category:"+category.ID),
			catalog.Filters{CategoryID: category.ID, OrderBy: "rank", Limit: searchPageSize})
		if err != nil {
			log.Printf("Catalog search failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Game catalog unavailable"})
			return
		}
		renderGameList(c, db, games, name)
	}
}

// @Summary Top games by minimum player count
// @Tags games
// @Produce json
// @Param num path int true "Minimum player count"
// @Success 200 {object} object{type=string,games=array,categories=object}
// @Failure 400 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /games/players/{num} [get]
func GamesByPlayerCount(db *gorm.DB, client *catalog.Client, cache *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		num, err := strconv.Atoi(c.Param("num"))
		if err != nil || num < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player count"})
			return
		}

		games, err := searchCached(c, client, cache,
			redis_utils.FormatSearchKey("players:"+strconv.Itoa(num)),
			catalog.Filters{MinPlayers: num, OrderBy: "rank", Limit: searchPageSize})
		if err != nil {
			log.Printf("Catalog search failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Game catalog unavailable"})
			return
		}
		renderGameList(c, db, games, strconv.Itoa(num)+"+ Players")
	}
}

// @Summary Top games within a player range
// @Tags games
// @Produce json
// @Param num path int true "Minimum player count"
// @Param max path int true "Maximum player count"
// @Success 200 {object} object{type=string,games=array,categories=object}
// @Failure 400 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /games/players/{num}/{max} [get]
func GamesByPlayerRange(db *gorm.DB, client *catalog.Client, cache *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		min, errMin := strconv.Atoi(c.Param("num"))
		max, errMax := strconv.Atoi(c.Param("max"))
		if errMin != nil || errMax != nil || min < 1 || max < min {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player range"})
			return
		}

		games, err := searchCached(c, client, cache,
			redis_utils.FormatSearchKey("players:"+strconv.Itoa(min)+"-"+strconv.Itoa(max)),
			catalog.Filters{MinPlayers: min, MaxPlayers: max, Limit: searchPageSize})
		if err != nil {
			log.Printf("Catalog search failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Game catalog unavailable"})
			return
		}
		renderGameList(c, db, games, strconv.Itoa(min)+"-"+strconv.Itoa(max)+" Players")
	}
}

// @Summary Search games by name
// @Description Fuzzy name search; an empty query returns the default listing
// @Tags games
// @Produce json
// @Param query query string false "Game name"
// @Success 200 {object} object{type=string,games=array,categories=object}
// @Failure 502 {object} object{error=string}
// @Router /games/search [get]
func SearchGames(db *gorm.DB, client *catalog.Client, cache *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("query")

		filters := catalog.Filters{Limit: searchPageSize}
		if query != "" {
			filters.Name = query
			filters.Fuzzy = true
		}

		games, err := searchCached(c, client, cache,
			redis_utils.FormatSearchKey("name:"+query), filters)
		if err != nil {
			log.Printf("Catalog search failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Game catalog unavailable"})
			return
		}
		renderGameList(c, db, games, query)
	}
}

// @Summary Game detail page
// @Description Returns the game with its category names, videos, images and reviews
// @Tags games
// @Produce json
// @Param game_id path string true "External game id"
// @Success 200 {object} object{game=object,categories=object,videos=array,images=array,reviews=array}
// @Failure 404 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /games/game/{game_id} [get]
func GameDetail(db *gorm.DB, client *catalog.Client, cache *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		games, err := searchCached(c, client, cache,
			redis_utils.FormatGameKey(gameID),
			catalog.Filters{IDs: []string{gameID}})
		if err != nil {
			log.Printf("Catalog search failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Game catalog unavailable"})
			return
		}
		if len(games) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		game := games[0]

		// Videos and images are decoration: if one of those calls fails the
		// page still renders, just without that section.
		videos := []catalog.Video{}
		videosKey := redis_utils.FormatVideosKey(gameID, videoLimit)
		if hit, _ := cachedInto(cache, videosKey, &videos); !hit {
			videos, err = client.Videos(c.Request.Context(), gameID, videoLimit)
			if err != nil {
				log.Printf("Fetching videos failed: %v", err)
				videos = []catalog.Video{}
			} else if cache != nil {
				if err := cache.SetCached(videosKey, videos, cacheTTL); err != nil {
					log.Printf("Cache write failed for %s: %v", videosKey, err)
				}
			}
		}

		images := []catalog.Image{}
		imagesKey := redis_utils.FormatImagesKey(gameID, imageLimit)
		if hit, _ := cachedInto(cache, imagesKey, &images); !hit {
			images, err = client.Images(c.Request.Context(), gameID, imageLimit)
			if err != nil {
				log.Printf("Fetching images failed: %v", err)
				images = []catalog.Image{}
			} else if cache != nil {
				if err := cache.SetCached(imagesKey, images, cacheTTL); err != nil {
					log.Printf("Cache write failed for %s: %v", imagesKey, err)
				}
			}
		}

		reviews := []models.Review{}
		if err := db.Where("game_id = ?", gameID).Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reviews"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"game":       game,
			"categories": catalog.CategoryNames(db, []catalog.Game{game}),
			"videos":     videos,
			"images":     images,
			"reviews":    reviews,
		})
	}
}
