package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/adscreener/adscreener/config"
	"github.com/adscreener/adscreener/middlewares"
	"github.com/adscreener/adscreener/router"
	"github.com/adscreener/adscreener/store/mongodb"
	"github.com/adscreener/adscreener/utils"
)

func init() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectMongo()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InfoLogger.Printf("Connected to MongoDB database %s", config.MongoDBName())

	stores := router.Stores{
		Notifications: mongodb.NewNotificationRepository(db),
		Ads:           mongodb.NewAdRepository(db),
		Users:         mongodb.NewUserRepository(db),
	}

	// Setup rate limiter (50 requests per second per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(stores)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := config.ServerPort()
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
