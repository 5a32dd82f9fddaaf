package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/notifier"
	"github.com/jwalitptl/salon-api/internal/service/reminder"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

type ReminderWorkerConfig struct {
	ScanInterval time.Duration
}

// ReminderWorker drives the reminder scheduler on a fixed interval and
// hands due appointments to the notifier. Scans run concurrently with
// bookings; the scheduler only flips per-appointment flags.
type ReminderWorker struct {
	reminderSvc *reminder.Service
	settings    reminder.SettingsProvider
	notifier    *notifier.Notifier
	config      ReminderWorkerConfig
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewReminderWorker(
	reminderSvc *reminder.Service,
	settings reminder.SettingsProvider,
	notifier *notifier.Notifier,
	config ReminderWorkerConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ReminderWorker {
	if config.ScanInterval <= 0 {
		config.ScanInterval = 5 * time.Minute
	}
	return &ReminderWorker{
		reminderSvc: reminderSvc,
		settings:    settings,
		notifier:    notifier,
		config:      config,
		logger:      logger,
		metrics:     metrics,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.ScanInterval)
	defer ticker.Stop()

	w.logger.Info("starting reminder worker")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("shutting down reminder worker")
			return
		case <-ticker.C:
			if err := w.tick(ctx, time.Now()); err != nil {
				w.logger.Error(err, "reminder scan failed")
			}
		}
	}
}

func (w *ReminderWorker) tick(ctx context.Context, now time.Time) error {
	settings, err := w.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.AutoSendReminders {
		return nil
	}

	timer := prometheus.NewTimer(w.metrics.ReminderScanTime)
	defer timer.ObserveDuration()

	due, err := w.reminderSvc.Scan(ctx, now)
	if err != nil {
		return err
	}

	for _, appointment := range due {
		w.metrics.RemindersSelected.Inc()
		if err := w.dispatch(ctx, appointment, settings); err != nil {
			w.metrics.RemindersFailed.Inc()
			w.logger.ZL.Error().Err(err).
				Str("appointment_id", appointment.ID.String()).
				Msg("failed to dispatch reminder")
		}
	}
	return nil
}

func (w *ReminderWorker) dispatch(ctx context.Context, appointment *model.Appointment, settings *model.Settings) error {
	return w.notifier.SendReminder(ctx, appointment, settings)
}
