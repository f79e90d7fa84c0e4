package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/clients"
	"github.com/AinaRoxane/Wallet/internal/config"
	"github.com/AinaRoxane/Wallet/internal/controllers"
	"github.com/AinaRoxane/Wallet/internal/messaging"
	"github.com/AinaRoxane/Wallet/internal/repositories"
	"github.com/AinaRoxane/Wallet/internal/routes"
	"github.com/AinaRoxane/Wallet/internal/scheduler"
	"github.com/AinaRoxane/Wallet/internal/services"
	"github.com/AinaRoxane/Wallet/internal/streaming"
	"github.com/AinaRoxane/Wallet/pkg/cache"
	"github.com/AinaRoxane/Wallet/pkg/database"
	"github.com/AinaRoxane/Wallet/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Init(cfg.Logging)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	// Redis is optional: the service degrades to uncached reads when it
	// is unreachable.
	redisClient, err := cache.NewRedisClient(cfg.Cache)
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable, running without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db.Database)
	feedRepo := repositories.NewPriceFeedRepository(db.Database)
	transactionRepo := repositories.NewTransactionRepository(db.Database)
	historyRepo := repositories.NewHistoryRepository(db.Database)
	notificationRepo := repositories.NewNotificationRepository(db.Database)
	snapshotRepo := repositories.NewSnapshotRepository(db.Database)

	// Services
	tokenService := services.NewTokenService(cfg.JWT)
	authService := services.NewAuthService(userRepo, feedRepo, tokenService)

	var portfolioCache services.PortfolioCache
	var feedsCache streaming.FeedsCache
	if redisClient != nil {
		portfolioCache = redisClient
		feedsCache = redisClient
	}

	portfolioService := services.NewPortfolioService(userRepo, feedRepo, snapshotRepo, portfolioCache)
	favoritesService := services.NewFavoritesService(userRepo, feedRepo)
	transactionService := services.NewTransactionService(userRepo, feedRepo, transactionRepo, historyRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	imageClient := clients.NewImageClient(cfg.Media)
	profileService := services.NewProfileService(userRepo, imageClient)

	// Background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := streaming.NewHub()
	priceStream := streaming.NewPriceStream(feedRepo, hub, feedsCache)
	priceStream.Start(ctx)
	defer priceStream.Stop()

	alertConsumer := messaging.NewAlertConsumer(cfg.RabbitMQ, notificationRepo, userRepo)
	if err := alertConsumer.Start(ctx); err != nil {
		logrus.WithError(err).Warn("Alert consumer unavailable, price alerts disabled")
		alertConsumer = nil
	} else {
		defer alertConsumer.Stop()
	}

	snapshotScheduler := scheduler.NewSnapshotScheduler(cfg.Snapshot, userRepo, feedRepo, snapshotRepo)
	if err := snapshotScheduler.Start(); err != nil {
		logrus.WithError(err).Fatal("Failed to start snapshot scheduler")
	}
	defer snapshotScheduler.Stop()

	var redisPinger controllers.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	router := routes.Setup(cfg.Server, routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		Portfolio:    controllers.NewPortfolioController(portfolioService),
		Market:       controllers.NewMarketController(portfolioService, favoritesService, hub),
		Transaction:  controllers.NewTransactionController(transactionService),
		Notification: controllers.NewNotificationController(notificationService),
		Profile:      controllers.NewProfileController(profileService, cfg.Media.MaxUploadSize),
		Health:       controllers.NewHealthController(db, redisPinger),
		TokenService: tokenService,
	})

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logrus.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down")
	cancel()
	hub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Forced shutdown")
	}

	logrus.Info("Server stopped")
}
