package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"servicelink/config"
	"servicelink/cron"
	"servicelink/database"
	accountRepo "servicelink/database/repository/account"
	bookingRepo "servicelink/database/repository/booking"
	notificationRepo "servicelink/database/repository/notification"
	workerRepo "servicelink/database/repository/worker"
	"servicelink/handlers"
	"servicelink/middleware"
	"servicelink/models"
	"servicelink/routes"
	"servicelink/services/auth"
	"servicelink/services/booking"
	"servicelink/services/directory"
	"servicelink/services/location"
	"servicelink/services/notification"
	"servicelink/services/payment"
	"servicelink/services/tasks"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type repositories struct {
	accounts      accountRepo.AccountRepository
	workers       workerRepo.WorkerRepository
	bookings      bookingRepo.BookingRepository
	notifications notificationRepo.NotificationRepository
}

// openRepositories selects the storage backend. The memory backend is seeded with the
// demo data set.
func openRepositories(logger *zap.Logger) (repositories, *mongo.Client) {
	if config.AppConfig.Storage == "mongo" {
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		return repositories{
			accounts:      accountRepo.NewMongoAccountRepo(),
			workers:       workerRepo.NewMongoWorkerRepo(),
			bookings:      bookingRepo.NewMongoBookingRepo(),
			notifications: notificationRepo.NewMongoNotificationRepo(),
		}, database.MongoClient
	}

	workers := append(workerRepo.SeedWorkers(), accountRepo.SeedWorkerAccount())
	return repositories{
		accounts:      accountRepo.NewMemoryAccountRepo(accountRepo.SeedAccounts()),
		workers:       workerRepo.NewMemoryWorkerRepo(workers),
		bookings:      bookingRepo.NewMemoryBookingRepo(bookingRepo.SeedBookings(time.Now())),
		notifications: notificationRepo.NewMemoryNotificationRepo(),
	}, nil
}

// openStores returns the session, OTP and draft stores.
func openStores(logger *zap.Logger) (sessions, otps, drafts utils.KVStore) {
	if config.AppConfig.SessionStore != "redis" {
		return utils.NewMemoryKV(), utils.NewMemoryKV(), utils.NewMemoryKV()
	}
	if err := utils.InitRedis(); err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	return utils.NewRedisKV(utils.AuthCacheClient, utils.AuthCachePrefix),
		utils.NewRedisKV(utils.OTPCacheClient, utils.OTPCachePrefix),
		utils.NewRedisKV(utils.BookingCacheClient, utils.BookingCachePrefix)
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, mongoClient := openRepositories(logger)
	sessionStore, otpStore, draftStore := openStores(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	utils.StartHealthMonitor(ctx, time.Minute, utils.RedisClients(), mongoClient)

	// services.
	tokens := utils.NewTokenIssuer(config.AppConfig.JWTSecret, config.AppConfig.SessionTTL)
	authService, err := auth.NewDefaultAuthService(
		sessionStore,
		repos.accounts,
		repos.workers,
		tokens,
		utils.LogOTPSender{Logger: logger},
		logger,
		auth.Options{SessionTTL: config.AppConfig.SessionTTL, StrictOTP: config.AppConfig.OTPStrict},
	)
	if err != nil {
		logger.Fatal("main: failed to create auth service", zap.Error(err))
	}
	authService.UseOTPStore(otpStore)

	locationService := location.NewService(location.NewIPGeolocator(config.AppConfig.GeolocationURL, logger), logger)
	workerDirectory := directory.New(repos.workers, logger, directory.WithLatency(config.AppConfig.DirectoryLatency))

	notificationService, err := notification.NewDefaultNotificationService(repos.notifications, logger)
	if err != nil {
		logger.Fatal("main: failed to create notification service", zap.Error(err))
	}

	paymentHandler := payment.NewPaymentHandler(logger, config.AppConfig.Currency)
	if config.AppConfig.StripeKey != "" {
		paymentHandler.Register(models.MethodStripe, payment.NewStripeProcessor(config.AppConfig.StripeKey))
	}

	bookingService, err := booking.NewDefaultBookingService(
		draftStore,
		repos.bookings,
		workerDirectory,
		repos.workers,
		paymentHandler,
		logger,
		booking.Options{},
	)
	if err != nil {
		logger.Fatal("main: failed to create booking service", zap.Error(err))
	}
	bookingService.Notifier = notificationService

	var reminderWorker *asynq.Server
	if config.AppConfig.RemindersEnabled {
		redisOpts := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}
		queueClient := asynq.NewClient(redisOpts)
		defer queueClient.Close()
		queueInspector := asynq.NewInspector(redisOpts)
		defer queueInspector.Close()
		bookingService.Reminders = tasks.AsynqScheduler{Client: queueClient, Inspector: queueInspector}
		reminderWorker = cron.InitReminderWorker(ctx, redisOpts, notificationService, logger)
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuthService:  authService,
		AdminKey:     config.AppConfig.AdminAPIKey,
		Auth:         handlers.NewAuthHandler(authService, locationService),
		Location:     handlers.NewLocationHandler(locationService),
		Workers:      handlers.NewWorkerHandler(workerDirectory, locationService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Admin:        handlers.NewAdminHandler(authService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

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

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	for _, c := range utils.RedisClients() {
		_ = c.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
