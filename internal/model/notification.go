package model

import (
	"time"

	"github.com/google/uuid"
)

// ReminderEvent is published to the message broker when an appointment
// enters its reminder window. The dispatch collaborator (WhatsApp link
// sender, mail relay) consumes it; delivery is not a core guarantee.
type ReminderEvent struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	ServiceName   string    `json:"service_name"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Channel       string    `json:"channel"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	ReminderChannelWhatsapp = "whatsapp"
	ReminderChannelEmail    = "email"
)

// BookingEvent is published after a successful booking so the
// surrounding system can notify the salon.
type BookingEvent struct {
	AppointmentID uuid.UUID         `json:"appointment_id"`
	CustomerName  string            `json:"customer_name"`
	StaffID       uuid.UUID         `json:"staff_id"`
	ServiceName   string            `json:"service_name"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Status        AppointmentStatus `json:"status"`
	Source        AppointmentSource `json:"source"`
	CreatedAt     time.Time         `json:"created_at"`
}
