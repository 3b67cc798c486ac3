package router

import (
	"github.com/gin-gonic/gin"

	"github.com/adscreener/adscreener/controllers"
	"github.com/adscreener/adscreener/middlewares"
	"github.com/adscreener/adscreener/models"
	"github.com/adscreener/adscreener/store"
)

type Stores struct {
	Notifications store.NotificationStore
	Ads           store.AdStore
	Users         store.UserStore
}

func SetupRouter(stores Stores) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(stores.Users, stores.Notifications)
	adCtrl := controllers.NewAdController(stores.Ads, stores.Notifications)
	notificationCtrl := controllers.NewNotificationController(stores.Notifications)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	// Profil user
	auth.GET("/profile", userCtrl.GetProfile)
	auth.PATCH("/profile", userCtrl.UpdateProfile)

	// ADS
	auth.POST("/ads", adCtrl.SubmitAd)
	auth.GET("/ads", adCtrl.GetAllAds)
	auth.GET("/ads/:ad_id", adCtrl.GetAdByID)
	auth.POST("/ads/:ad_id/review",
		middlewares.RequireRoles(models.RoleReviewer, models.RoleAdmin),
		adCtrl.ReviewAd)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetNotifications)
	auth.POST("/notifications", notificationCtrl.MarkNotificationsRead)
	auth.DELETE("/notifications", notificationCtrl.ClearNotifications)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("", controllers.RealtimeHandler)
	}

	return r
}
