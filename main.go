package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripnest/config"
	"tripnest/cron"
	"tripnest/database"
	bookingRepo "tripnest/database/repository/booking"
	hotelRepo "tripnest/database/repository/hotel"
	notificationRepo "tripnest/database/repository/notification"
	savedRepo "tripnest/database/repository/saved"
	tripRepo "tripnest/database/repository/trip"
	userRepo "tripnest/database/repository/user"
	"tripnest/database/seed"
	"tripnest/handlers"
	"tripnest/middleware"
	"tripnest/routes"
	"tripnest/services/auth"
	"tripnest/services/booking"
	"tripnest/services/notification"
	"tripnest/services/tasks"
	"tripnest/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.GetLogger().Fatal("main: failed to load config", zap.Error(err))
	}
	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app *firebase.App
	if database.NeedsFirebase(cfg) {
		app, err = database.InitFirebase(ctx, cfg)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase", zap.Error(err))
		}
	}

	store, err := database.InitStore(ctx, cfg, app, logger)
	if err != nil {
		logger.Fatal("main: failed to open document store", zap.Error(err))
	}
	defer store.Close()

	if cfg.DocstoreDriver == database.DriverMemory {
		if err := seed.Run(ctx, store); err != nil {
			logger.Fatal("main: failed to seed in-memory store", zap.Error(err))
		}
		logger.Info("Seeded in-memory store with sample data")
	}

	metrics := utils.NewMetrics("tripnest")

	// repositories.
	trips := tripRepo.NewTripRepo(store)
	hotels := hotelRepo.NewHotelRepo(store, hotelRepo.WithAutoProvision(cfg.HotelAutoProvisionRooms))
	bookings := bookingRepo.NewBookingRepo(store)
	saved := savedRepo.NewSavedTripsRepo(store, trips, cfg.SavedTripsJoinTimeout(), logger)
	users := userRepo.NewUserRepo(store)
	notifications := notificationRepo.NewNotificationRepo(store)
	if cfg.HotelAutoProvisionRooms {
		logger.Warn("Hotel room auto-provisioning is on; unknown room numbers are created on booking")
	}

	// sessions.
	var sessions auth.SessionStore = auth.NewMemorySessionStore()
	healthChecks := map[string]utils.HealthCheck{"docstore": store.Ping}
	if cfg.RedisAddr != "" {
		authCache, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisAuthDB)
		if err != nil {
			logger.Fatal("main: failed to connect to redis", zap.Error(err))
		}
		defer authCache.Close()
		sessions = auth.NewRedisSessionStore(authCache)
		healthChecks["redis"] = func(ctx context.Context) error { return authCache.Ping(ctx).Err() }
	} else {
		logger.Warn("REDIS_ADDR not set; sessions are kept in memory")
	}

	// identity.
	var identity auth.IdentityProvider
	switch cfg.AuthProvider {
	case "firebase":
		identity, err = auth.NewFirebaseIdentity(ctx, app, cfg.FirebaseAPIKey)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase auth", zap.Error(err))
		}
	default:
		identity = auth.NewLocalIdentity(users, 0)
	}
	authService := auth.NewAuthService(identity, users, sessions, utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL()), logger)

	// push notifications.
	var notifier notification.NotificationService = notification.NewLogNotificationService(logger)
	if cfg.PushEnabled {
		fcm, err := app.Messaging(ctx)
		if err != nil {
			logger.Fatal("main: failed to get messaging client", zap.Error(err))
		}
		notifier, err = notification.NewFCMNotificationService(fcm, logger)
		if err != nil {
			logger.Fatal("main: failed to initialize notifications", zap.Error(err))
		}
	}

	// reminders.
	var reminders tasks.ReminderScheduler
	if cfg.RemindersEnabled && cfg.RedisAddr != "" {
		queue := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
		client := asynq.NewClient(queue)
		defer client.Close()
		reminders = tasks.NewAsynqReminderScheduler(client)

		worker := cron.NewReminderWorker(queue, bookings, notifier, logger)
		worker.Start(ctx)
		defer worker.Shutdown()
	} else if cfg.RemindersEnabled {
		logger.Warn("REMINDERS_ENABLED needs REDIS_ADDR; travel reminders are off")
	}

	bookingService := booking.NewBookingService(bookings, hotels, trips, notifier, reminders, metrics, logger)

	monitor := utils.NewHealthMonitor(healthChecks)
	monitor.Start(ctx, 30*time.Second)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))

	handlerBundle := &handlers.HandlerBundle{
		Auth:          authService,
		Trips:         trips,
		Hotels:        hotels,
		Bookings:      bookings,
		Saved:         saved,
		Notifications: notifications,
		BookingSvc:    bookingService,
	}
	routes.RegisterRoutes(router, handlerBundle, monitor, metrics)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
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
	logger.Sugar().Info("main: server stopped gracefully")
}
