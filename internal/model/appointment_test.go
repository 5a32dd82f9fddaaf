package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusConfirmed, AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.Valid())
	assert.True(t, AppointmentStatusCompleted.Valid())
	assert.False(t, AppointmentStatus("unknown").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}

func TestStartsAt(t *testing.T) {
	appointment := &Appointment{Date: "2026-09-07", Time: "14:30"}

	startsAt, err := appointment.StartsAt(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 14, 30, 0, 0, time.UTC), startsAt)

	appointment.Time = "noon"
	_, err = appointment.StartsAt(time.UTC)
	assert.Error(t, err)
}

func TestDefaultAvailability(t *testing.T) {
	policy := DefaultAvailability(uuid.Nil)

	assert.Equal(t, "09:00", policy.WorkStart)
	assert.Equal(t, "18:00", policy.WorkEnd)
	assert.True(t, policy.IsActive)
	assert.True(t, policy.WorksOn(time.Monday))
	assert.True(t, policy.WorksOn(time.Saturday))
	assert.False(t, policy.WorksOn(time.Sunday))
}
