package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

type StaffServicer interface {
	CreateStaff(ctx context.Context, staff *model.Staff) error
	GetStaff(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	UpdateStaff(ctx context.Context, staff *model.Staff) error
	DeleteStaff(ctx context.Context, id uuid.UUID) error
	ListStaff(ctx context.Context) ([]*model.Staff, error)
	GetAvailability(ctx context.Context, staffID uuid.UUID) (*model.Availability, error)
	UpdateAvailability(ctx context.Context, availability *model.Availability) error
}

type Service struct {
	repo             repository.StaffRepository
	availabilityRepo repository.AvailabilityRepository
}

func NewService(repo repository.StaffRepository, availabilityRepo repository.AvailabilityRepository) *Service {
	return &Service{
		repo:             repo,
		availabilityRepo: availabilityRepo,
	}
}

func (s *Service) CreateStaff(ctx context.Context, staff *model.Staff) error {
	if staff.Name == "" {
		return apperrors.NewValidation("staff name is required")
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateStaff(ctx context.Context, staff *model.Staff) error {
	if err := s.repo.Update(ctx, staff); err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}
	return nil
}

func (s *Service) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context) ([]*model.Staff, error) {
	return s.repo.List(ctx)
}

// GetAvailability returns the stored policy, or the default policy when
// none has been saved for the staff member.
func (s *Service) GetAvailability(ctx context.Context, staffID uuid.UUID) (*model.Availability, error) {
	if _, err := s.repo.Get(ctx, staffID); err != nil {
		return nil, err
	}
	availability, err := s.availabilityRepo.Get(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	if availability == nil {
		return model.DefaultAvailability(staffID), nil
	}
	return availability, nil
}

func (s *Service) UpdateAvailability(ctx context.Context, availability *model.Availability) error {
	if _, err := s.repo.Get(ctx, availability.StaffID); err != nil {
		return err
	}
	if err := validateWorkingHours(availability.WorkStart, availability.WorkEnd); err != nil {
		return err
	}
	for _, off := range availability.OffDays {
		if _, err := time.Parse(model.DateLayout, off); err != nil {
			return apperrors.NewValidation("invalid off-day date")
		}
	}
	if err := s.availabilityRepo.Upsert(ctx, availability); err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	return nil
}

func validateWorkingHours(start, end string) error {
	startT, err := time.Parse(model.TimeLayout, start)
	if err != nil {
		return apperrors.NewValidation("invalid work start time")
	}
	endT, err := time.Parse(model.TimeLayout, end)
	if err != nil {
		return apperrors.NewValidation("invalid work end time")
	}
	if !startT.Before(endT) {
		return apperrors.NewValidation("work start must be before work end")
	}
	return nil
}
