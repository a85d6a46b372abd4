// File: refugio/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"refugio/config"
	"refugio/cron"
	"refugio/database"
	bookingRepo "refugio/database/repository/booking"
	settingsRepo "refugio/database/repository/settings"
	"refugio/handlers"
	"refugio/middleware"
	"refugio/routes"
	"refugio/services/admin"
	"refugio/services/availability"
	"refugio/services/notification"
	"refugio/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	settings := settingsRepo.NewMongoSettingsRepo(utils.GetCacheClient())

	// The sync manager keeps one in-memory availability index per property,
	// fed by the booking change stream. Everything the public site answers
	// comes out of these indexes, never straight from the database.
	syncManager := availability.NewManager(bookings, logger)
	ctx, cancelSync := context.WithCancel(context.Background())
	defer cancelSync()
	if err := syncManager.Start(ctx, config.AppConfig.Properties); err != nil {
		logger.Sugar().Fatalf("main: failed to start availability sync: %v", err)
	}

	// services.
	adminService := &admin.DefaultAdminService{
		Bookings:  bookings,
		Settings:  settings,
		AuthCache: utils.GetAuthCacheClient(),
	}

	notificationService, err := notification.NewDefaultNotificationService(settings)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	cron.InitInquiryWorker(notificationService)
	taskClient := asynq.NewClient(cron.QueueRedisOpt())
	defer taskClient.Close()

	availabilityHandler := handlers.NewAvailabilityHandler(syncManager)
	selectionHandler := handlers.NewSelectionHandler(syncManager, utils.GetCacheClient())
	inquiryHandler := handlers.NewInquiryHandler(syncManager, utils.GetCacheClient(), taskClient)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuthCache: utils.GetAuthCacheClient(),

		ListProperties:  availabilityHandler.ListPropertiesHandler,
		GetAvailability: availabilityHandler.GetAvailabilityHandler,
		GetPricing:      adminHandler.GetPricingHandler,

		StartSelection: selectionHandler.StartSelectionHandler,
		SelectDate:     selectionHandler.SelectDateHandler,
		GetSelection:   selectionHandler.GetSelectionHandler,
		ClearSelection: selectionHandler.ClearSelectionHandler,

		CreateInquiry: inquiryHandler.CreateInquiryHandler,

		AdminLogin:     adminHandler.LoginHandler,
		AdminLogout:    adminHandler.LogoutHandler,
		BlockDates:     adminHandler.BlockDatesHandler,
		ListBlocks:     adminHandler.ListBlocksHandler,
		RemoveBlock:    adminHandler.RemoveBlockHandler,
		UpdatePricing:  adminHandler.UpdatePricingHandler,
		RegisterDevice: adminHandler.RegisterDeviceHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	syncManager.Stop()
	cancelSync()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
