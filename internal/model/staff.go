package model

import (
	"time"

	"github.com/google/uuid"
)

type Staff struct {
	Base
	Name      string `db:"name" json:"name"`
	Specialty string `db:"specialty" json:"specialty"`
	Avatar    string `db:"avatar" json:"avatar,omitempty"`
}

// Availability is the booking policy for one staff member. There is at
// most one record per staff; when none exists the default policy applies
// (Monday through Saturday, 09:00-18:00, active).
type Availability struct {
	StaffID     uuid.UUID      `db:"staff_id" json:"staff_id"`
	WorkingDays []time.Weekday `db:"-" json:"working_days"`
	WorkStart   string         `db:"work_start" json:"work_start"`
	WorkEnd     string         `db:"work_end" json:"work_end"`
	OffDays     []string       `db:"-" json:"off_days"`
	IsActive    bool           `db:"is_active" json:"is_active"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// DefaultAvailability is the policy assumed for staff without an
// explicit availability record.
func DefaultAvailability(staffID uuid.UUID) *Availability {
	return &Availability{
		StaffID: staffID,
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		WorkStart: "09:00",
		WorkEnd:   "18:00",
		IsActive:  true,
	}
}

// WorksOn reports whether the weekday is part of the working schedule.
func (a *Availability) WorksOn(day time.Weekday) bool {
	for _, d := range a.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// IsOffDay reports whether the given date (DateLayout) is blocked.
func (a *Availability) IsOffDay(date string) bool {
	for _, d := range a.OffDays {
		if d == date {
			return true
		}
	}
	return false
}

type CreateStaffRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty" binding:"required"`
	Avatar    string `json:"avatar"`
}

type UpdateStaffRequest struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Avatar    *string `json:"avatar"`
}

type UpdateAvailabilityRequest struct {
	WorkingDays []time.Weekday `json:"working_days" binding:"required"`
	WorkStart   string         `json:"work_start" binding:"required"`
	WorkEnd     string         `json:"work_end" binding:"required"`
	OffDays     []string       `json:"off_days"`
	IsActive    bool           `json:"is_active"`
}
