package main

import (
	"Meeple/config"
	pgconfig "Meeple/config/postgres"
	_ "Meeple/config/swagger"
	"Meeple/middleware"
	"Meeple/routes"
	"Meeple/services/catalog"
	"Meeple/services/redis"
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Meeple API
// @version 1.0
// @description Gin-Gonic server for the "Meeple" board-game discovery and review API
// @BasePath /
// @paths
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := pgconfig.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := pgconfig.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	client := catalog.NewClient(os.Getenv("BGA_CLIENT_ID"))

	// The category table is reference data: seed it once, on first boot.
	// A seed failure is not fatal, browse pages just lose category names.
	if err := catalog.SeedCategories(context.Background(), gormDB, client); err != nil {
		log.Printf("Warning: Category seed failed: %v", err)
	}

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Printf("Warning: Redis unavailable, catalog caching disabled: %v", err)
		redisClient = nil
	} else {
		defer redis.CloseRedis(redisClient)
	}

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, gormDB, client, redisClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
