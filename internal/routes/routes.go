package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/AinaRoxane/Wallet/internal/config"
	"github.com/AinaRoxane/Wallet/internal/controllers"
	"github.com/AinaRoxane/Wallet/internal/middleware"
	"github.com/AinaRoxane/Wallet/internal/monitoring"
	"github.com/AinaRoxane/Wallet/internal/services"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Portfolio    *controllers.PortfolioController
	Market       *controllers.MarketController
	Transaction  *controllers.TransactionController
	Notification *controllers.NotificationController
	Profile      *controllers.ProfileController
	Health       *controllers.HealthController
	TokenService services.TokenService
}

// Setup wires middleware and routes onto a fresh engine.
func Setup(cfg config.ServerConfig, ctrl Controllers) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.LoggingMiddleware())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", ctrl.Health.Health)
	router.GET("/metrics", monitoring.Handler())

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(ctrl.TokenService))
	{
		protected.GET("/portfolio", ctrl.Portfolio.GetValuation)
		protected.GET("/portfolio/snapshots", ctrl.Portfolio.GetSnapshots)

		protected.GET("/market/feeds", ctrl.Market.GetFeeds)
		protected.GET("/market/stream", ctrl.Market.Stream)
		protected.PUT("/favorites/:symbol", ctrl.Market.ToggleFavorite)

		protected.POST("/transactions/deposit", ctrl.Transaction.Deposit)
		protected.POST("/transactions/withdrawal", ctrl.Transaction.Withdraw)
		protected.GET("/history", ctrl.Transaction.GetHistory)

		protected.GET("/notifications", ctrl.Notification.GetFeed)
		protected.GET("/notifications/unread", ctrl.Notification.CountUnread)
		protected.PUT("/notifications/:id/opened", ctrl.Notification.MarkOpened)

		protected.GET("/profile", ctrl.Profile.Get)
		protected.PUT("/profile/name", ctrl.Profile.UpdateFullName)
		protected.POST("/profile/photo", ctrl.Profile.UploadPhoto)
	}

	return router
}
