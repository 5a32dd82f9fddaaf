package reminder

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository/memory"
	"github.com/jwalitptl/salon-api/pkg/logger"
)

func newFixture(t *testing.T) (*Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	testLogger := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	svc := NewService(store.Appointments(), store.Settings(), testLogger, time.UTC)
	return svc, store
}

func insertAppointment(t *testing.T, store *memory.Store, startsAt time.Time, status model.AppointmentStatus) *model.Appointment {
	t.Helper()

	appointment := &model.Appointment{
		Base:          model.Base{ID: uuid.New()},
		CustomerName:  "Ayşe Yılmaz",
		CustomerPhone: "+905551234567",
		StaffID:       uuid.New(),
		Date:          startsAt.Format(model.DateLayout),
		Time:          startsAt.Format(model.TimeLayout),
		Status:        status,
	}
	require.NoError(t, store.Appointments().CreateIfSlotFree(context.Background(), appointment))
	return appointment
}

func TestScanSelectsWithinWindow(t *testing.T) {
	svc, store := newFixture(t)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	// Default window is two hours.
	inside := insertAppointment(t, store, now.Add(90*time.Minute), model.AppointmentStatusConfirmed)
	outside := insertAppointment(t, store, now.Add(3*time.Hour), model.AppointmentStatusConfirmed)
	past := insertAppointment(t, store, now.Add(-time.Hour), model.AppointmentStatusConfirmed)
	pending := insertAppointment(t, store, now.Add(time.Hour), model.AppointmentStatusPending)

	due, err := svc.Scan(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, due, 1)
	assert.Equal(t, inside.ID, due[0].ID)
	assert.True(t, due[0].ReminderSent)

	for _, id := range []uuid.UUID{outside.ID, past.ID, pending.ID} {
		got, err := store.Appointments().Get(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, got.ReminderSent)
	}
}

func TestScanWindowBoundaries(t *testing.T) {
	svc, store := newFixture(t)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	// Exactly at the window edge is still due; exactly now is not.
	atEdge := insertAppointment(t, store, now.Add(2*time.Hour), model.AppointmentStatusConfirmed)
	atNow := insertAppointment(t, store, now, model.AppointmentStatusConfirmed)

	due, err := svc.Scan(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, due, 1)
	assert.Equal(t, atEdge.ID, due[0].ID)

	got, err := store.Appointments().Get(context.Background(), atNow.ID)
	require.NoError(t, err)
	assert.False(t, got.ReminderSent)
}

func TestScanIsIdempotent(t *testing.T) {
	svc, store := newFixture(t)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	insertAppointment(t, store, now.Add(time.Hour), model.AppointmentStatusConfirmed)

	due, err := svc.Scan(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, due, 1)

	due, err = svc.Scan(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestScanHonorsConfiguredWindow(t *testing.T) {
	svc, store := newFixture(t)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	settings := model.DefaultSettings()
	settings.ReminderHours = 6
	require.NoError(t, store.Settings().Update(context.Background(), settings))

	appointment := insertAppointment(t, store, now.Add(5*time.Hour), model.AppointmentStatusConfirmed)

	due, err := svc.Scan(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, appointment.ID, due[0].ID)
}

func TestScanSkipsMalformedTimes(t *testing.T) {
	svc, store := newFixture(t)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	broken := &model.Appointment{
		Base:          model.Base{ID: uuid.New()},
		CustomerName:  "Ayşe Yılmaz",
		CustomerPhone: "+905551234567",
		StaffID:       uuid.New(),
		Date:          now.Format(model.DateLayout),
		Time:          "noon",
		Status:        model.AppointmentStatusConfirmed,
	}
	require.NoError(t, store.Appointments().CreateIfSlotFree(context.Background(), broken))
	appointment := insertAppointment(t, store, now.Add(30*time.Minute), model.AppointmentStatusConfirmed)

	due, err := svc.Scan(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, due, 1)
	assert.Equal(t, appointment.ID, due[0].ID)
}
