// File: courtside/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtside/config"
	"courtside/cron"
	"courtside/handlers"
	"courtside/middleware"
	"courtside/routes"
	"courtside/services/booking"
	"courtside/services/tasks"
	"courtside/upstream"
	"courtside/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Outbound adapter to the remote court API, with a short-TTL snapshot cache.
	courtAPI := upstream.NewClient(config.AppConfig.CourtAPIURL, config.CourtAPITimeout(), logger)
	cachedAPI := &booking.CachedCourtAPI{
		API:    courtAPI,
		Cache:  utils.GetCacheClient(),
		TTL:    config.SnapshotTTL(),
		Logger: logger,
	}

	// Selection sessions and the payment-expiry queue.
	sessionStore := &booking.SessionStore{
		Client: utils.GetSessionCacheClient(),
		TTL:    config.SessionTTL(),
	}
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	defer taskClient.Close()

	// services.
	gridService := &booking.DefaultGridService{
		API:    cachedAPI,
		Logger: logger,
	}
	confirmationService := &booking.DefaultConfirmationService{
		Sessions:      sessionStore,
		API:           cachedAPI,
		Expiry:        &tasks.Scheduler{Client: taskClient},
		PaymentWindow: config.PaymentWindow(),
		Logger:        logger,
	}

	bookingHandler := handlers.NewBookingHandler(gridService, sessionStore, confirmationService, logger)
	paymentHandler := handlers.NewPaymentHandler(courtAPI, logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, paymentHandler)

	// Start the expiry worker that cancels unpaid bookings at their deadline.
	cron.InitExpiryWorker(courtAPI)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
