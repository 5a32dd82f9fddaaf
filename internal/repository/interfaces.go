package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
)

// All repository interfaces in one file
type (
	StaffRepository interface {
		Create(ctx context.Context, staff *model.Staff) error
		Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
		Update(ctx context.Context, staff *model.Staff) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Staff, error)
	}

	// AvailabilityRepository stores per-staff booking policies. Get
	// returns nil (no error) when no record exists; callers fall back
	// to the default policy.
	AvailabilityRepository interface {
		Get(ctx context.Context, staffID uuid.UUID) (*model.Availability, error)
		Upsert(ctx context.Context, availability *model.Availability) error
		Delete(ctx context.Context, staffID uuid.UUID) error
	}

	CatalogRepository interface {
		CreateCategory(ctx context.Context, category *model.ServiceCategory) error
		GetCategory(ctx context.Context, id uuid.UUID) (*model.ServiceCategory, error)
		UpdateCategory(ctx context.Context, category *model.ServiceCategory) error
		DeleteCategory(ctx context.Context, id uuid.UUID) error
		ListCategories(ctx context.Context) ([]*model.ServiceCategory, error)
		GetSubcategory(ctx context.Context, categoryID uuid.UUID, name string) (*model.Subcategory, error)
		AddSubcategory(ctx context.Context, sub *model.Subcategory) error
		DeleteSubcategory(ctx context.Context, id uuid.UUID) error
	}

	AppointmentRepository interface {
		// CreateIfSlotFree inserts the appointment only if no other
		// non-cancelled appointment holds the same (staff, date, time)
		// slot. Insert and conflict check are one atomic unit; the
		// losing writer of a race gets model-level ErrConflict.
		CreateIfSlotFree(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
		MarkReminderSent(ctx context.Context, id uuid.UUID) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListForStaffDate(ctx context.Context, staffID uuid.UUID, date string) ([]*model.Appointment, error)
		HasConflict(ctx context.Context, staffID uuid.UUID, date, timeOfDay string) (bool, error)
		HasAnyConflict(ctx context.Context, date, timeOfDay string) (bool, error)
		ListConfirmedUnreminded(ctx context.Context) ([]*model.Appointment, error)
	}

	CustomerRepository interface {
		// UpsertOnBooking creates the customer on first contact and
		// folds the booking into the aggregates on every later one.
		UpsertOnBooking(ctx context.Context, name, phone string, price float64) (*model.Customer, error)
		GetByPhone(ctx context.Context, phone string) (*model.Customer, error)
		List(ctx context.Context, filters *model.CustomerFilters) ([]*model.Customer, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	SettingsRepository interface {
		Get(ctx context.Context) (*model.Settings, error)
		Update(ctx context.Context, settings *model.Settings) error
	}
)
