package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	BookingsCreated   *prometheus.CounterVec
	BookingsRejected  *prometheus.CounterVec
	SlotConflicts     prometheus.Counter
	RemindersSelected prometheus.Counter
	RemindersFailed   prometheus.Counter
	ReminderScanTime  prometheus.Histogram
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_created_total",
			Help:      "Total number of appointments created, by source and status",
		}, []string{"source", "status"}),
		BookingsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_rejected_total",
			Help:      "Total number of rejected booking requests, by reason",
		}, []string{"reason"}),
		SlotConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slot_conflicts_total",
			Help:      "Total number of bookings rejected because the slot was taken",
		}),
		RemindersSelected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminders_selected_total",
			Help:      "Total number of appointments selected for a reminder",
		}),
		RemindersFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminders_failed_total",
			Help:      "Total number of reminder dispatches that failed",
		}),
		ReminderScanTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminder_scan_duration_seconds",
			Help:      "Time spent scanning for due reminders",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
	}
}
