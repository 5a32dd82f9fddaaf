package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/internal/service/availability"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

// SettingsProvider yields the current booking configuration.
type SettingsProvider interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// Notifier is the collaborator told about successful bookings. Failures
// are logged, never surfaced to the customer.
type Notifier interface {
	BookingCreated(ctx context.Context, appointment *model.Appointment) error
}

type Service struct {
	appointmentRepo repository.AppointmentRepository
	customerRepo    repository.CustomerRepository
	staffRepo       repository.StaffRepository
	catalogRepo     repository.CatalogRepository
	availabilitySvc *availability.Service
	settings        SettingsProvider
	notifier        Notifier
	logger          *logger.Logger

	// salonWideExclusive blocks a slot across all staff when any staff
	// member holds it. Off by default; per-staff scoping is the
	// intended semantics.
	salonWideExclusive bool

	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithSalonWideExclusivity() Option {
	return func(s *Service) { s.salonWideExclusive = true }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(
	appointmentRepo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	catalogRepo repository.CatalogRepository,
	availabilitySvc *availability.Service,
	settings SettingsProvider,
	notifier Notifier,
	logger *logger.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		staffRepo:       staffRepo,
		catalogRepo:     catalogRepo,
		availabilitySvc: availabilitySvc,
		settings:        settings,
		notifier:        notifier,
		logger:          logger,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates a booking request end to end, inserts the
// appointment and upserts the customer record. No partial writes occur
// on a validation failure; the insert itself is atomic against racing
// requests for the same slot.
func (s *Service) Create(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error) {
	appointment, err := s.create(ctx, req)
	s.observeBooking(appointment, err)
	return appointment, err
}

func (s *Service) observeBooking(appointment *model.Appointment, err error) {
	if s.metrics == nil {
		return
	}
	if err == nil {
		s.metrics.BookingsCreated.
			WithLabelValues(string(appointment.Source), appointment.Status.String()).Inc()
		return
	}
	switch apperrors.CodeOf(err) {
	case apperrors.ErrConflict:
		s.metrics.SlotConflicts.Inc()
		s.metrics.BookingsRejected.WithLabelValues("conflict").Inc()
	case apperrors.ErrValidation:
		s.metrics.BookingsRejected.WithLabelValues("validation").Inc()
	default:
		s.metrics.BookingsRejected.WithLabelValues("storage").Inc()
	}
}

func (s *Service) create(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error) {
	if err := validateRequiredFields(req); err != nil {
		return nil, err
	}

	phone, err := NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	if _, err := s.staffRepo.Get(ctx, req.StaffID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidation("unknown staff")
		}
		return nil, apperrors.NewPersistence(err)
	}

	sub, err := s.catalogRepo.GetSubcategory(ctx, req.CategoryID, req.ServiceName)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidation("unknown service")
		}
		return nil, apperrors.NewPersistence(err)
	}

	if err := s.validateSlot(ctx, req); err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, apperrors.NewPersistence(err)
	}

	status := model.AppointmentStatusPending
	if settings.AutoConfirm {
		status = model.AppointmentStatusConfirmed
	}

	source := req.Source
	if source == "" {
		source = model.AppointmentSourceOnline
	}

	now := s.now()
	appointment := &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerName:  req.CustomerName(),
		CustomerPhone: phone,
		StaffID:       req.StaffID,
		CategoryID:    req.CategoryID,
		ServiceName:   sub.Name,
		Price:         sub.Price,
		Date:          req.Date,
		Time:          req.Time,
		Status:        status,
		Source:        source,
	}

	// First writer wins; the losing side of a race gets the conflict
	// from the conditional insert, not from the pre-check above.
	if err := s.appointmentRepo.CreateIfSlotFree(ctx, appointment); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, apperrors.NewPersistence(err)
	}

	if _, err := s.customerRepo.UpsertOnBooking(ctx, appointment.CustomerName, phone, appointment.Price); err != nil {
		// The appointment is already committed; surface the failure so
		// the surrounding system can reconcile the customer record.
		return nil, apperrors.NewPersistence(err)
	}

	if s.notifier != nil {
		if err := s.notifier.BookingCreated(ctx, appointment); err != nil {
			s.logger.ZL.Warn().Err(err).
				Str("appointment_id", appointment.ID.String()).
				Msg("booking notification failed")
		}
	}

	s.logger.ZL.Info().
		Str("appointment_id", appointment.ID.String()).
		Str("staff_id", appointment.StaffID.String()).
		Str("date", appointment.Date).
		Str("time", appointment.Time).
		Str("status", appointment.Status.String()).
		Msg("appointment created")

	return appointment, nil
}

func validateRequiredFields(req *model.BookingRequest) error {
	switch {
	case strings.TrimSpace(req.FirstName) == "":
		return apperrors.NewValidation("first name is required")
	case strings.TrimSpace(req.LastName) == "":
		return apperrors.NewValidation("last name is required")
	case strings.TrimSpace(req.Phone) == "":
		return apperrors.NewValidation("phone is required")
	case req.StaffID == uuid.Nil:
		return apperrors.NewValidation("staff is required")
	case req.CategoryID == uuid.Nil:
		return apperrors.NewValidation("service category is required")
	case strings.TrimSpace(req.ServiceName) == "":
		return apperrors.NewValidation("service is required")
	case req.Date == "":
		return apperrors.NewValidation("date is required")
	case req.Time == "":
		return apperrors.NewValidation("time is required")
	}
	return nil
}

func (s *Service) validateSlot(ctx context.Context, req *model.BookingRequest) error {
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return apperrors.NewValidation("invalid date")
	}
	if _, err := time.Parse(model.TimeLayout, req.Time); err != nil {
		return apperrors.NewValidation("invalid time")
	}

	today := s.now().Format(model.DateLayout)
	if req.Date < today {
		return apperrors.NewValidation("date must be today or later")
	}

	offered, err := s.availabilitySvc.IsSlotOffered(ctx, req.StaffID, req.Date, req.Time)
	if err != nil {
		return apperrors.NewPersistence(err)
	}
	if !offered {
		// Distinguish a taken slot from one the schedule never offers.
		taken, err := s.appointmentRepo.HasConflict(ctx, req.StaffID, req.Date, req.Time)
		if err != nil {
			return apperrors.NewPersistence(err)
		}
		if taken {
			return apperrors.NewConflict("slot already booked")
		}
		return apperrors.NewValidation("slot not offered for this staff and date")
	}

	if s.salonWideExclusive {
		taken, err := s.appointmentRepo.HasAnyConflict(ctx, req.Date, req.Time)
		if err != nil {
			return apperrors.NewPersistence(err)
		}
		if taken {
			return apperrors.NewConflict("slot already booked")
		}
	}

	return nil
}

// Confirm moves a pending appointment to confirmed.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, model.AppointmentStatusConfirmed)
}

// Complete moves a confirmed appointment to completed.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, model.AppointmentStatusCompleted)
}

// Cancel moves a pending or confirmed appointment to cancelled, which
// frees its slot.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, model.AppointmentStatusCancelled)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to model.AppointmentStatus) error {
	appointment, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if !model.CanTransition(appointment.Status, to) {
		return apperrors.NewInvalidTransition(appointment.Status.String(), to.String())
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, to); err != nil {
		return apperrors.NewPersistence(err)
	}

	s.logger.ZL.Info().
		Str("appointment_id", id.String()).
		Str("from", appointment.Status.String()).
		Str("to", to.String()).
		Msg("appointment status changed")
	return nil
}

// Delete removes an appointment. Only cancelled appointments may be
// deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if appointment.Status != model.AppointmentStatusCancelled {
		return apperrors.NewBadRequest("can only delete cancelled appointments", nil)
	}

	return s.appointmentRepo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointmentRepo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.appointmentRepo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.NewPersistence(err)
	}
	return appointments, nil
}
