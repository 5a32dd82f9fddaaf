package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/salon-api/internal/config"
	"github.com/jwalitptl/salon-api/internal/email"
	"github.com/jwalitptl/salon-api/internal/handler"
	appointmentHandler "github.com/jwalitptl/salon-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/salon-api/internal/handler/auth"
	bookingHandler "github.com/jwalitptl/salon-api/internal/handler/booking"
	catalogHandler "github.com/jwalitptl/salon-api/internal/handler/catalog"
	customerHandler "github.com/jwalitptl/salon-api/internal/handler/customer"
	settingsHandler "github.com/jwalitptl/salon-api/internal/handler/settings"
	staffHandler "github.com/jwalitptl/salon-api/internal/handler/staff"
	"github.com/jwalitptl/salon-api/internal/middleware"
	"github.com/jwalitptl/salon-api/internal/notifier"
	"github.com/jwalitptl/salon-api/internal/repository/postgres"
	"github.com/jwalitptl/salon-api/internal/router"
	"github.com/jwalitptl/salon-api/internal/service/auth"
	"github.com/jwalitptl/salon-api/internal/service/availability"
	"github.com/jwalitptl/salon-api/internal/service/booking"
	"github.com/jwalitptl/salon-api/internal/service/catalog"
	"github.com/jwalitptl/salon-api/internal/service/customer"
	"github.com/jwalitptl/salon-api/internal/service/reminder"
	"github.com/jwalitptl/salon-api/internal/service/settings"
	"github.com/jwalitptl/salon-api/internal/service/staff"
	"github.com/jwalitptl/salon-api/internal/worker"
	jwtauth "github.com/jwalitptl/salon-api/pkg/auth"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/messaging/redis"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:  logger.InfoLevel,
		Output: os.Stdout,
	})

	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Booking.Timezone).Msg("invalid timezone")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	staffRepo := postgres.NewStaffRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &appLogger.ZL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	emailSvc := email.NewService(email.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})
	notifierSvc := notifier.New(broker, emailSvc, cfg.Email.SalonInbox, appLogger)

	appMetrics := metrics.NewMetrics("salon", "api")

	jwtSvc := jwtauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := auth.NewService(cfg.Admin.Username, cfg.Admin.PasswordHash, jwtSvc)
	settingsSvc := settings.NewService(settingsRepo)
	availabilitySvc := availability.NewService(availabilityRepo, appointmentRepo, staffRepo)
	staffSvc := staff.NewService(staffRepo, availabilityRepo)
	catalogSvc := catalog.NewService(catalogRepo)
	customerSvc := customer.NewService(customerRepo)

	bookingOpts := []booking.Option{booking.WithMetrics(appMetrics)}
	if cfg.Booking.SalonWideExclusive {
		bookingOpts = append(bookingOpts, booking.WithSalonWideExclusivity())
	}
	bookingSvc := booking.NewService(
		appointmentRepo,
		customerRepo,
		staffRepo,
		catalogRepo,
		availabilitySvc,
		settingsSvc,
		notifierSvc,
		appLogger,
		bookingOpts...,
	)

	reminderSvc := reminder.NewService(appointmentRepo, settingsSvc, appLogger, loc)
	reminderWorker := worker.NewReminderWorker(
		reminderSvc,
		settingsSvc,
		notifierSvc,
		worker.ReminderWorkerConfig{
			ScanInterval: time.Duration(cfg.Reminder.ScanIntervalMinutes) * time.Minute,
		},
		appLogger,
		appMetrics,
	)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler()
	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		bookingHandler.NewHandler(bookingSvc, availabilitySvc),
		catalogHandler.NewHandler(catalogSvc),
		staffHandler.NewHandler(staffSvc),
		appointmentHandler.NewHandler(bookingSvc),
		customerHandler.NewHandler(customerSvc),
		settingsHandler.NewHandler(settingsSvc),
		h,
		router.RouterConfig{
			RateLimit:     rate.Limit(50),
			RateBurst:     100,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "salon_api",
		},
	)
	r.Setup()

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go reminderWorker.Start(workerCtx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	appLogger.Info(fmt.Sprintf("listening on :%d", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
