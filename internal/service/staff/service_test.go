package staff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository/memory"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

func newService(t *testing.T) (*Service, *model.Staff) {
	t.Helper()

	store := memory.NewStore()
	svc := NewService(store.Staff(), store.Availability())

	member := &model.Staff{Name: "Elif", Specialty: "Hair"}
	require.NoError(t, svc.CreateStaff(context.Background(), member))
	return svc, member
}

func TestCreateStaffRequiresName(t *testing.T) {
	svc, _ := newService(t)

	err := svc.CreateStaff(context.Background(), &model.Staff{Specialty: "Nails"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestAvailabilityDefaultsUntilSaved(t *testing.T) {
	svc, member := newService(t)
	ctx := context.Background()

	policy, err := svc.GetAvailability(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", policy.WorkStart)
	assert.Equal(t, "18:00", policy.WorkEnd)

	policy.WorkStart = "10:00"
	require.NoError(t, svc.UpdateAvailability(ctx, policy))

	saved, err := svc.GetAvailability(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", saved.WorkStart)
}

func TestUpdateAvailabilityValidation(t *testing.T) {
	svc, member := newService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.Availability)
	}{
		{"start after end", func(a *model.Availability) { a.WorkStart, a.WorkEnd = "18:00", "09:00" }},
		{"start equals end", func(a *model.Availability) { a.WorkStart, a.WorkEnd = "12:00", "12:00" }},
		{"garbage start", func(a *model.Availability) { a.WorkStart = "morning" }},
		{"garbage off day", func(a *model.Availability) { a.OffDays = []string{"tomorrow"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := model.DefaultAvailability(member.ID)
			tt.mutate(policy)

			err := svc.UpdateAvailability(ctx, policy)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrValidation), "got %v", err)
		})
	}
}

func TestUpdateAvailabilityUnknownStaff(t *testing.T) {
	svc, _ := newService(t)

	policy := model.DefaultAvailability(uuid.New())
	err := svc.UpdateAvailability(context.Background(), policy)
	assert.Error(t, err)
}

func TestDeleteStaffRemovesAvailability(t *testing.T) {
	svc, member := newService(t)
	ctx := context.Background()

	policy := model.DefaultAvailability(member.ID)
	require.NoError(t, svc.UpdateAvailability(ctx, policy))

	require.NoError(t, svc.DeleteStaff(ctx, member.ID))

	_, err := svc.GetStaff(ctx, member.ID)
	assert.Error(t, err)
	_, err = svc.GetAvailability(ctx, member.ID)
	assert.Error(t, err)
}
