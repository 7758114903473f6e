package routes

import (
	"Meeple/controllers"
	"Meeple/middleware"
	"Meeple/services/catalog"
	"Meeple/services/redis"
	utils "Meeple/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, client *catalog.Client, cache *redis.RedisClient) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/", controllers.Home)

	games := api.Group("/games")
	{
		games.GET("/top_games", controllers.TopGames(db, client, cache))
		games.GET("/category/:category_name", controllers.GamesByCategory(db, client, cache))
		games.GET("/players/:num", controllers.GamesByPlayerCount(db, client, cache))
		games.GET("/players/:num/:max", controllers.GamesByPlayerRange(db, client, cache))
		games.GET("/search", controllers.SearchGames(db, client, cache))
		games.GET("/game/:game_id", controllers.GameDetail(db, client, cache))
	}

	api.GET("/users/:username", controllers.GetUserPublicInfo(db))
	api.GET("/users/:username/reviews", controllers.GetUserReviews(db))

	api.POST("/signup", controllers.SignUp(db))
	api.POST("/login", controllers.Login(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired(db))
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))

		authentication.PATCH("/update", controllers.UpdateUserInfo(db))

		authentication.DELETE("/delete", controllers.DeleteAccount(db))

		authentication.GET("/likes", controllers.GetLikes(db))

		authentication.POST("/likes/:game_id", controllers.ToggleLike(db))

		authentication.POST("/reviews", controllers.CreateReview(db))

		authentication.PUT("/reviews/:id", controllers.UpdateReview(db))

		authentication.DELETE("/reviews/:id", controllers.DeleteReview(db))
	}
}
