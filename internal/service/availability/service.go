package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
)

// Business hours for the slot grid. The full day is 09:00-18:00 in
// 15-minute steps (36 candidates); a staff member's working hours can
// only narrow it.
const (
	dayStart     = "09:00"
	dayEnd       = "18:00"
	slotInterval = 15 * time.Minute
)

type Service struct {
	availabilityRepo repository.AvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
	staffRepo        repository.StaffRepository
}

func NewService(availabilityRepo repository.AvailabilityRepository, appointmentRepo repository.AppointmentRepository, staffRepo repository.StaffRepository) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		staffRepo:        staffRepo,
	}
}

// GetAvailableSlots returns the bookable times for a staff member on a
// date, ascending, formatted with model.TimeLayout. Unknown staff and
// non-working days yield an empty slice, not an error. The result is a
// pure function of current store state.
func (s *Service) GetAvailableSlots(ctx context.Context, staffID uuid.UUID, date string) ([]string, error) {
	day, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	if _, err := s.staffRepo.Get(ctx, staffID); err != nil {
		return []string{}, nil
	}

	policy, err := s.availabilityRepo.Get(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	if policy == nil {
		policy = model.DefaultAvailability(staffID)
	}

	if !policy.IsActive || !policy.WorksOn(day.Weekday()) || policy.IsOffDay(date) {
		return []string{}, nil
	}

	booked, err := s.bookedTimes(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	workStart, err := parseClock(policy.WorkStart)
	if err != nil {
		return nil, err
	}
	workEnd, err := parseClock(policy.WorkEnd)
	if err != nil {
		return nil, err
	}

	gridStart, _ := parseClock(dayStart)
	gridEnd, _ := parseClock(dayEnd)

	slots := []string{}
	for t := gridStart; t.Before(gridEnd); t = t.Add(slotInterval) {
		// Working hours include the start minute, exclude the end.
		if t.Before(workStart) || !t.Before(workEnd) {
			continue
		}
		slot := t.Format(model.TimeLayout)
		if booked[slot] {
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// IsSlotOffered reports whether the slot appears in GetAvailableSlots
// for the staff/date. The booking orchestrator uses it to reject both
// off-schedule and already-taken times.
func (s *Service) IsSlotOffered(ctx context.Context, staffID uuid.UUID, date, timeOfDay string) (bool, error) {
	slots, err := s.GetAvailableSlots(ctx, staffID, date)
	if err != nil {
		return false, err
	}
	for _, slot := range slots {
		if slot == timeOfDay {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) bookedTimes(ctx context.Context, staffID uuid.UUID, date string) (map[string]bool, error) {
	appointments, err := s.appointmentRepo.ListForStaffDate(ctx, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}
	booked := make(map[string]bool, len(appointments))
	for _, appointment := range appointments {
		booked[appointment.Time] = true
	}
	return booked, nil
}

func parseClock(value string) (time.Time, error) {
	t, err := time.Parse(model.TimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t, nil
}
