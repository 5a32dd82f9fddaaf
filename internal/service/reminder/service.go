package reminder

import (
	"context"
	"time"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/logger"
)

// SettingsProvider yields the current booking configuration.
type SettingsProvider interface {
	Get(ctx context.Context) (*model.Settings, error)
}

type Service struct {
	appointmentRepo repository.AppointmentRepository
	settings        SettingsProvider
	logger          *logger.Logger
	loc             *time.Location
}

func NewService(appointmentRepo repository.AppointmentRepository, settings SettingsProvider, logger *logger.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		logger:          logger,
		loc:             loc,
	}
}

// Scan returns the confirmed appointments whose start falls within the
// reminder window relative to now, and marks each one reminder-sent
// before returning. The flag write happens per appointment and
// synchronously with selection, so a repeated Scan at the same instant
// selects nothing. Takes now as input for testability; the worker loop
// supplies the wall clock.
func (s *Service) Scan(ctx context.Context, now time.Time) ([]*model.Appointment, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, apperrors.NewPersistence(err)
	}
	window := time.Duration(settings.ReminderHours) * time.Hour

	candidates, err := s.appointmentRepo.ListConfirmedUnreminded(ctx)
	if err != nil {
		return nil, apperrors.NewPersistence(err)
	}

	var due []*model.Appointment
	for _, appointment := range candidates {
		startsAt, err := appointment.StartsAt(s.loc)
		if err != nil {
			s.logger.ZL.Warn().Err(err).
				Str("appointment_id", appointment.ID.String()).
				Msg("skipping appointment with malformed date/time")
			continue
		}

		until := startsAt.Sub(now)
		if until <= 0 || until > window {
			continue
		}

		// Persist the flag before reporting the appointment as due, so
		// a crash between the two cannot double-dispatch.
		if err := s.appointmentRepo.MarkReminderSent(ctx, appointment.ID); err != nil {
			s.logger.ZL.Error().Err(err).
				Str("appointment_id", appointment.ID.String()).
				Msg("failed to mark reminder sent")
			continue
		}

		appointment.ReminderSent = true
		due = append(due, appointment)
	}

	return due, nil
}
