package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

type AppointmentSource string

const (
	AppointmentSourceOnline AppointmentSource = "online"
	AppointmentSourceAdmin  AppointmentSource = "admin"
	AppointmentSourceManual AppointmentSource = "manual"
)

type Appointment struct {
	Base
	CustomerName  string            `db:"customer_name" json:"customer_name"`
	CustomerPhone string            `db:"customer_phone" json:"customer_phone"`
	StaffID       uuid.UUID         `db:"staff_id" json:"staff_id"`
	CategoryID    uuid.UUID         `db:"category_id" json:"category_id"`
	ServiceName   string            `db:"service_name" json:"service_name"`
	Price         float64           `db:"price" json:"price"`
	Date          string            `db:"date" json:"date"`
	Time          string            `db:"time" json:"time"`
	Status        AppointmentStatus `db:"status" json:"status"`
	Source        AppointmentSource `db:"source" json:"source"`
	ReminderSent  bool              `db:"reminder_sent" json:"reminder_sent"`
}

// StartsAt combines Date and Time into a wall-clock instant in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, a.Date+" "+a.Time, loc)
}

// validTransitions encodes the status machine: pending and confirmed
// appointments can move forward or be cancelled, cancelled and
// completed are terminal.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// CanTransition reports whether moving from one status to another is
// allowed.
func CanTransition(from, to AppointmentStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

func (s AppointmentStatus) String() string { return string(s) }

// BookingRequest is the input to the booking orchestrator. Phone is
// accepted in local Turkish form and normalized before storage.
type BookingRequest struct {
	FirstName   string            `json:"first_name" binding:"required"`
	LastName    string            `json:"last_name" binding:"required"`
	Phone       string            `json:"phone" binding:"required"`
	StaffID     uuid.UUID         `json:"staff_id" binding:"required"`
	CategoryID  uuid.UUID         `json:"category_id" binding:"required"`
	ServiceName string            `json:"service_name" binding:"required"`
	Date        string            `json:"date" binding:"required"`
	Time        string            `json:"time" binding:"required"`
	Source      AppointmentSource `json:"source"`
}

func (r *BookingRequest) CustomerName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

type AppointmentFilters struct {
	StaffID uuid.UUID
	Status  AppointmentStatus
	Date    string
}

// TimeSlot is a bookable candidate returned by the availability
// resolver, formatted with TimeLayout.
type TimeSlot struct {
	Time string `json:"time"`
}
