package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/email"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/messaging"
)

const (
	bookingChannel  = "bookings"
	reminderChannel = "reminders"
)

// Notifier publishes booking and reminder events to the message broker
// and optionally mirrors them to the salon mailbox. Dispatch to the
// customer (WhatsApp link, SMS) is a downstream consumer's job.
type Notifier struct {
	broker     messaging.Broker
	emailSvc   email.Service
	salonEmail string
	logger     *logger.Logger
}

func New(broker messaging.Broker, emailSvc email.Service, salonEmail string, logger *logger.Logger) *Notifier {
	return &Notifier{
		broker:     broker,
		emailSvc:   emailSvc,
		salonEmail: salonEmail,
		logger:     logger,
	}
}

func (n *Notifier) BookingCreated(ctx context.Context, appointment *model.Appointment) error {
	event := &model.BookingEvent{
		AppointmentID: appointment.ID,
		CustomerName:  appointment.CustomerName,
		StaffID:       appointment.StaffID,
		ServiceName:   appointment.ServiceName,
		Date:          appointment.Date,
		Time:          appointment.Time,
		Status:        appointment.Status,
		Source:        appointment.Source,
		CreatedAt:     time.Now(),
	}

	if err := n.broker.Publish(ctx, bookingChannel, event); err != nil {
		return err
	}

	if n.emailSvc != nil && n.salonEmail != "" {
		if err := n.emailSvc.SendBookingNotice(ctx, n.salonEmail, appointment); err != nil {
			n.logger.ZL.Warn().Err(err).
				Str("appointment_id", appointment.ID.String()).
				Msg("booking notice email failed")
		}
	}
	return nil
}

// SendReminder publishes a reminder event for one due appointment. The
// channel is chosen from settings: WhatsApp deep links go through the
// broker, email goes directly.
func (n *Notifier) SendReminder(ctx context.Context, appointment *model.Appointment, settings *model.Settings) error {
	channel := model.ReminderChannelEmail
	if settings.WhatsappReminder {
		channel = model.ReminderChannelWhatsapp
	}

	event := &model.ReminderEvent{
		ID:            uuid.New(),
		AppointmentID: appointment.ID,
		CustomerName:  appointment.CustomerName,
		CustomerPhone: appointment.CustomerPhone,
		ServiceName:   appointment.ServiceName,
		Date:          appointment.Date,
		Time:          appointment.Time,
		Channel:       channel,
		CreatedAt:     time.Now(),
	}

	if err := n.broker.Publish(ctx, reminderChannel, event); err != nil {
		return err
	}

	if channel == model.ReminderChannelEmail && n.emailSvc != nil && n.salonEmail != "" {
		if err := n.emailSvc.SendReminder(ctx, n.salonEmail, appointment); err != nil {
			n.logger.ZL.Warn().Err(err).
				Str("appointment_id", appointment.ID.String()).
				Msg("reminder email failed")
		}
	}
	return nil
}
