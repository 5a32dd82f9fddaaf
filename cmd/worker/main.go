package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/salon-api/internal/config"
	"github.com/jwalitptl/salon-api/internal/email"
	"github.com/jwalitptl/salon-api/internal/notifier"
	"github.com/jwalitptl/salon-api/internal/repository/postgres"
	"github.com/jwalitptl/salon-api/internal/service/reminder"
	"github.com/jwalitptl/salon-api/internal/service/settings"
	"github.com/jwalitptl/salon-api/internal/worker"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/messaging/redis"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

// workerEnv overrides the file config for deploy-time knobs.
type workerEnv struct {
	ScanIntervalMinutes int    `envconfig:"REMINDER_SCAN_INTERVAL_MIN" default:"0"`
	HealthAddr          string `envconfig:"WORKER_HEALTH_ADDR" default:":8081"`
}

func setupHealthCheck(addr string, appLogger *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			appLogger.ZL.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var env workerEnv
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal().Err(err).Msg("failed to read environment")
	}
	if env.ScanIntervalMinutes > 0 {
		cfg.Reminder.ScanIntervalMinutes = env.ScanIntervalMinutes
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

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &appLogger.ZL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	appointmentRepo := postgres.NewAppointmentRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	emailSvc := email.NewService(email.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})
	notifierSvc := notifier.New(broker, emailSvc, cfg.Email.SalonInbox, appLogger)

	settingsSvc := settings.NewService(settingsRepo)
	reminderSvc := reminder.NewService(appointmentRepo, settingsSvc, appLogger, loc)

	reminderWorker := worker.NewReminderWorker(
		reminderSvc,
		settingsSvc,
		notifierSvc,
		worker.ReminderWorkerConfig{
			ScanInterval: time.Duration(cfg.Reminder.ScanIntervalMinutes) * time.Minute,
		},
		appLogger,
		metrics.NewMetrics("salon", "worker"),
	)

	setupHealthCheck(env.HealthAddr, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	go reminderWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down worker")
	cancel()
	time.Sleep(time.Second)
}
