// File: clearheadspace/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clearheadspace/config"
	"clearheadspace/cron"
	"clearheadspace/database"
	analyticsRepo "clearheadspace/database/repository/analytics"
	bookingRepo "clearheadspace/database/repository/booking"
	providerRepo "clearheadspace/database/repository/provider"
	userRepoPkg "clearheadspace/database/repository/user"
	"clearheadspace/handlers"
	"clearheadspace/middleware"
	"clearheadspace/routes"
	"clearheadspace/services/availability"
	"clearheadspace/services/booking"
	"clearheadspace/services/matching"
	"clearheadspace/services/notification"
	"clearheadspace/services/provider"
	"clearheadspace/services/reminder"
	"clearheadspace/services/reports"
	"clearheadspace/services/user"
	"clearheadspace/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()
	anRepo := analyticsRepo.NewMongoAnalyticsRepo()

	// outbound mail.
	var notifier notification.Notifier = notification.StubNotifier{}
	if sg := notification.NewSendgridNotifier(
		config.AppConfig.SendgridAPIKey,
		config.AppConfig.EmailFrom,
		config.AppConfig.EmailFromName,
	); sg != nil {
		notifier = sg
	} else {
		logger.Sugar().Warn("main: no SendGrid key configured, emails will only be logged")
	}
	dispatcher := notification.NewAsynqDispatcher()
	defer dispatcher.Close()

	// services.
	bookingService := booking.NewDefaultBookingService(bkRepo, provRepo, dispatcher)
	availabilityService := availability.NewDefaultAvailabilityService(provRepo, utils.GetCacheClient())
	matchingService := matching.NewDefaultMatchingService(provRepo)
	providerService := provider.NewDefaultProviderService(provRepo)
	userService := user.NewDefaultUserService(usrRepo, bkRepo, dispatcher)
	reminderService := reminder.NewService(bkRepo, notifier)
	reportService := reports.NewService(bkRepo, anRepo)

	handlers.Init(
		bookingService,
		availabilityService,
		matchingService,
		providerService,
		userService,
		reportService,
		bkRepo,
	)
	routes.RegisterRoutes(router)

	// background workers.
	cron.InitEmailWorker(notifier)
	scheduler := cron.InitScheduler(reminderService, reportService)
	defer scheduler.Stop()

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

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
