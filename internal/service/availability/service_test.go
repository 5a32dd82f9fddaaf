package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository/memory"
)

func newFixture(t *testing.T) (*Service, *memory.Store, uuid.UUID) {
	t.Helper()

	store := memory.NewStore()
	svc := NewService(store.Availability(), store.Appointments(), store.Staff())

	member := &model.Staff{Name: "Elif", Specialty: "Hair"}
	require.NoError(t, store.Staff().Create(context.Background(), member))
	return svc, store, member.ID
}

// nextDate returns the next occurrence of the weekday strictly in the
// future.
func nextDate(day time.Weekday) string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(model.DateLayout)
}

func TestDefaultScheduleYieldsFullGrid(t *testing.T) {
	svc, _, staffID := newFixture(t)

	slots, err := svc.GetAvailableSlots(context.Background(), staffID, nextDate(time.Monday))
	require.NoError(t, err)

	assert.Len(t, slots, 36)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:15", slots[1])
	assert.Equal(t, "17:45", slots[35])
}

func TestSundayIsClosedByDefault(t *testing.T) {
	svc, _, staffID := newFixture(t)

	slots, err := svc.GetAvailableSlots(context.Background(), staffID, nextDate(time.Sunday))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestUnknownStaffYieldsNoSlots(t *testing.T) {
	svc, _, _ := newFixture(t)

	slots, err := svc.GetAvailableSlots(context.Background(), uuid.New(), nextDate(time.Monday))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestInvalidDateIsAnError(t *testing.T) {
	svc, _, staffID := newFixture(t)

	_, err := svc.GetAvailableSlots(context.Background(), staffID, "06/01/2026")
	assert.Error(t, err)
}

func TestInactiveStaffYieldsNoSlots(t *testing.T) {
	svc, store, staffID := newFixture(t)

	policy := model.DefaultAvailability(staffID)
	policy.IsActive = false
	require.NoError(t, store.Availability().Upsert(context.Background(), policy))

	slots, err := svc.GetAvailableSlots(context.Background(), staffID, nextDate(time.Monday))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestOffDayYieldsNoSlots(t *testing.T) {
	svc, store, staffID := newFixture(t)
	date := nextDate(time.Wednesday)

	policy := model.DefaultAvailability(staffID)
	policy.OffDays = []string{date}
	require.NoError(t, store.Availability().Upsert(context.Background(), policy))

	slots, err := svc.GetAvailableSlots(context.Background(), staffID, date)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestWorkingHoursClipTheGrid(t *testing.T) {
	svc, store, staffID := newFixture(t)

	policy := model.DefaultAvailability(staffID)
	policy.WorkStart = "10:00"
	policy.WorkEnd = "12:00"
	require.NoError(t, store.Availability().Upsert(context.Background(), policy))

	slots, err := svc.GetAvailableSlots(context.Background(), staffID, nextDate(time.Monday))
	require.NoError(t, err)

	// Start inclusive, end exclusive.
	assert.Equal(t, []string{
		"10:00", "10:15", "10:30", "10:45",
		"11:00", "11:15", "11:30", "11:45",
	}, slots)
}

func TestBookedSlotsAreRemoved(t *testing.T) {
	svc, store, staffID := newFixture(t)
	date := nextDate(time.Thursday)

	booked := &model.Appointment{
		Base:          model.Base{ID: uuid.New()},
		CustomerName:  "Ayşe Yılmaz",
		CustomerPhone: "+905551234567",
		StaffID:       staffID,
		Date:          date,
		Time:          "11:30",
		Status:        model.AppointmentStatusConfirmed,
	}
	require.NoError(t, store.Appointments().CreateIfSlotFree(context.Background(), booked))

	slots, err := svc.GetAvailableSlots(context.Background(), staffID, date)
	require.NoError(t, err)
	assert.Len(t, slots, 35)
	assert.NotContains(t, slots, "11:30")
}

func TestCancelledAppointmentFreesTheSlot(t *testing.T) {
	svc, store, staffID := newFixture(t)
	date := nextDate(time.Thursday)

	booked := &model.Appointment{
		Base:          model.Base{ID: uuid.New()},
		CustomerName:  "Ayşe Yılmaz",
		CustomerPhone: "+905551234567",
		StaffID:       staffID,
		Date:          date,
		Time:          "11:30",
		Status:        model.AppointmentStatusConfirmed,
	}
	require.NoError(t, store.Appointments().CreateIfSlotFree(context.Background(), booked))
	require.NoError(t, store.Appointments().UpdateStatus(context.Background(), booked.ID, model.AppointmentStatusCancelled))

	slots, err := svc.GetAvailableSlots(context.Background(), staffID, date)
	require.NoError(t, err)
	assert.Contains(t, slots, "11:30")
}

func TestIsSlotOffered(t *testing.T) {
	svc, _, staffID := newFixture(t)
	date := nextDate(time.Friday)

	offered, err := svc.IsSlotOffered(context.Background(), staffID, date, "09:00")
	require.NoError(t, err)
	assert.True(t, offered)

	offered, err = svc.IsSlotOffered(context.Background(), staffID, date, "08:45")
	require.NoError(t, err)
	assert.False(t, offered)

	offered, err = svc.IsSlotOffered(context.Background(), staffID, date, "18:00")
	require.NoError(t, err)
	assert.False(t, offered)
}
