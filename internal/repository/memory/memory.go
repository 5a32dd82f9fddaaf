package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

// Store is an in-memory implementation of every repository interface.
// It backs the service when no database is reachable (the local
// fallback) and is the fixture for unit tests. A single mutex guards
// all collections, which also serializes the conflict-check-then-insert
// sequence for bookings.
type Store struct {
	mu           sync.RWMutex
	staff        map[uuid.UUID]*model.Staff
	availability map[uuid.UUID]*model.Availability
	categories   map[uuid.UUID]*model.ServiceCategory
	appointments map[uuid.UUID]*model.Appointment
	customers    map[string]*model.Customer
	settings     *model.Settings
}

func NewStore() *Store {
	return &Store{
		staff:        make(map[uuid.UUID]*model.Staff),
		availability: make(map[uuid.UUID]*model.Availability),
		categories:   make(map[uuid.UUID]*model.ServiceCategory),
		appointments: make(map[uuid.UUID]*model.Appointment),
		customers:    make(map[string]*model.Customer),
	}
}

func (s *Store) Staff() repository.StaffRepository               { return (*staffStore)(s) }
func (s *Store) Availability() repository.AvailabilityRepository { return (*availabilityStore)(s) }
func (s *Store) Catalog() repository.CatalogRepository           { return (*catalogStore)(s) }
func (s *Store) Appointments() repository.AppointmentRepository  { return (*appointmentStore)(s) }
func (s *Store) Customers() repository.CustomerRepository        { return (*customerStore)(s) }
func (s *Store) Settings() repository.SettingsRepository         { return (*settingsStore)(s) }

type staffStore Store

func (s *staffStore) Create(_ context.Context, staff *model.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff.ID = uuid.New()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	cp := *staff
	s.staff[staff.ID] = &cp
	return nil
}

func (s *staffStore) Get(_ context.Context, id uuid.UUID) (*model.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	staff, ok := s.staff[id]
	if !ok {
		return nil, apperrors.NewNotFound("staff", nil)
	}
	cp := *staff
	return &cp, nil
}

func (s *staffStore) Update(_ context.Context, staff *model.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.staff[staff.ID]; !ok {
		return apperrors.NewNotFound("staff", nil)
	}
	staff.UpdatedAt = time.Now()
	cp := *staff
	s.staff[staff.ID] = &cp
	return nil
}

func (s *staffStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.staff[id]; !ok {
		return apperrors.NewNotFound("staff", nil)
	}
	delete(s.staff, id)
	delete(s.availability, id)
	return nil
}

func (s *staffStore) List(_ context.Context) ([]*model.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Staff, 0, len(s.staff))
	for _, staff := range s.staff {
		cp := *staff
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type availabilityStore Store

func (s *availabilityStore) Get(_ context.Context, staffID uuid.UUID) (*model.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	availability, ok := s.availability[staffID]
	if !ok {
		return nil, nil
	}
	cp := *availability
	return &cp, nil
}

func (s *availabilityStore) Upsert(_ context.Context, availability *model.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	availability.UpdatedAt = time.Now()
	cp := *availability
	s.availability[availability.StaffID] = &cp
	return nil
}

func (s *availabilityStore) Delete(_ context.Context, staffID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.availability, staffID)
	return nil
}

type catalogStore Store

func (s *catalogStore) CreateCategory(_ context.Context, category *model.ServiceCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = uuid.New()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	for i := range category.Subcategories {
		category.Subcategories[i].ID = uuid.New()
		category.Subcategories[i].CategoryID = category.ID
		category.Subcategories[i].Position = i
	}

	cp := *category
	cp.Subcategories = append([]model.Subcategory(nil), category.Subcategories...)
	s.categories[category.ID] = &cp
	return nil
}

func (s *catalogStore) GetCategory(_ context.Context, id uuid.UUID) (*model.ServiceCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, apperrors.NewNotFound("service category", nil)
	}
	cp := *category
	cp.Subcategories = append([]model.Subcategory(nil), category.Subcategories...)
	return &cp, nil
}

func (s *catalogStore) UpdateCategory(_ context.Context, category *model.ServiceCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[category.ID]
	if !ok {
		return apperrors.NewNotFound("service category", nil)
	}
	existing.Name = category.Name
	existing.Icon = category.Icon
	existing.UpdatedAt = time.Now()
	return nil
}

func (s *catalogStore) DeleteCategory(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return apperrors.NewNotFound("service category", nil)
	}
	delete(s.categories, id)
	return nil
}

func (s *catalogStore) ListCategories(_ context.Context) ([]*model.ServiceCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.ServiceCategory, 0, len(s.categories))
	for _, category := range s.categories {
		cp := *category
		cp.Subcategories = append([]model.Subcategory(nil), category.Subcategories...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *catalogStore) GetSubcategory(_ context.Context, categoryID uuid.UUID, name string) (*model.Subcategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[categoryID]
	if !ok {
		return nil, apperrors.NewNotFound("service category", nil)
	}
	for i := range category.Subcategories {
		if category.Subcategories[i].Name == name {
			cp := category.Subcategories[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFound("service", nil)
}

func (s *catalogStore) AddSubcategory(_ context.Context, sub *model.Subcategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[sub.CategoryID]
	if !ok {
		return apperrors.NewNotFound("service category", nil)
	}
	sub.ID = uuid.New()
	sub.Position = len(category.Subcategories)
	category.Subcategories = append(category.Subcategories, *sub)
	return nil
}

func (s *catalogStore) DeleteSubcategory(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, category := range s.categories {
		for i := range category.Subcategories {
			if category.Subcategories[i].ID == id {
				category.Subcategories = append(
					category.Subcategories[:i],
					category.Subcategories[i+1:]...,
				)
				return nil
			}
		}
	}
	return apperrors.NewNotFound("service", nil)
}

type appointmentStore Store

func (s *appointmentStore) CreateIfSlotFree(_ context.Context, appointment *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check and insert under one lock: first writer wins.
	for _, existing := range s.appointments {
		if existing.StaffID == appointment.StaffID &&
			existing.Date == appointment.Date &&
			existing.Time == appointment.Time &&
			existing.Status != model.AppointmentStatusCancelled {
			return apperrors.NewConflict("slot already booked")
		}
	}

	cp := *appointment
	s.appointments[appointment.ID] = &cp
	return nil
}

func (s *appointmentStore) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	appointment, ok := s.appointments[id]
	if !ok {
		return nil, apperrors.NewNotFound("appointment", nil)
	}
	cp := *appointment
	return &cp, nil
}

func (s *appointmentStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, ok := s.appointments[id]
	if !ok {
		return apperrors.NewNotFound("appointment", nil)
	}
	appointment.Status = status
	appointment.UpdatedAt = time.Now()
	return nil
}

func (s *appointmentStore) MarkReminderSent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, ok := s.appointments[id]
	if !ok {
		return apperrors.NewNotFound("appointment", nil)
	}
	appointment.ReminderSent = true
	appointment.UpdatedAt = time.Now()
	return nil
}

func (s *appointmentStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return apperrors.NewNotFound("appointment", nil)
	}
	delete(s.appointments, id)
	return nil
}

func (s *appointmentStore) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Appointment
	for _, appointment := range s.appointments {
		if filters != nil {
			if filters.StaffID != uuid.Nil && appointment.StaffID != filters.StaffID {
				continue
			}
			if filters.Status != "" && appointment.Status != filters.Status {
				continue
			}
			if filters.Date != "" && appointment.Date != filters.Date {
				continue
			}
		}
		cp := *appointment
		out = append(out, &cp)
	}
	sortAppointments(out)
	return out, nil
}

func (s *appointmentStore) ListForStaffDate(_ context.Context, staffID uuid.UUID, date string) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Appointment
	for _, appointment := range s.appointments {
		if appointment.StaffID == staffID &&
			appointment.Date == date &&
			appointment.Status != model.AppointmentStatusCancelled {
			cp := *appointment
			out = append(out, &cp)
		}
	}
	sortAppointments(out)
	return out, nil
}

func (s *appointmentStore) HasConflict(_ context.Context, staffID uuid.UUID, date, timeOfDay string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, appointment := range s.appointments {
		if appointment.StaffID == staffID &&
			appointment.Date == date &&
			appointment.Time == timeOfDay &&
			appointment.Status != model.AppointmentStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (s *appointmentStore) HasAnyConflict(_ context.Context, date, timeOfDay string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, appointment := range s.appointments {
		if appointment.Date == date &&
			appointment.Time == timeOfDay &&
			appointment.Status != model.AppointmentStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (s *appointmentStore) ListConfirmedUnreminded(_ context.Context) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Appointment
	for _, appointment := range s.appointments {
		if appointment.Status == model.AppointmentStatusConfirmed && !appointment.ReminderSent {
			cp := *appointment
			out = append(out, &cp)
		}
	}
	sortAppointments(out)
	return out, nil
}

func sortAppointments(appointments []*model.Appointment) {
	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		if appointments[i].Time != appointments[j].Time {
			return appointments[i].Time < appointments[j].Time
		}
		return appointments[i].CreatedAt.Before(appointments[j].CreatedAt)
	})
}

type customerStore Store

func (s *customerStore) UpsertOnBooking(_ context.Context, name, phone string, price float64) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	customer, ok := s.customers[phone]
	if !ok {
		customer = &model.Customer{
			Base: model.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:              name,
			Phone:             phone,
			TotalAppointments: 1,
			TotalSpent:        price,
			LastVisit:         now,
		}
		s.customers[phone] = customer
	} else {
		customer.Name = name
		customer.TotalAppointments++
		customer.TotalSpent += price
		customer.LastVisit = now
		customer.UpdatedAt = now
	}

	cp := *customer
	return &cp, nil
}

func (s *customerStore) GetByPhone(_ context.Context, phone string) (*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[phone]
	if !ok {
		return nil, apperrors.NewNotFound("customer", nil)
	}
	cp := *customer
	return &cp, nil
}

func (s *customerStore) List(_ context.Context, filters *model.CustomerFilters) ([]*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Customer
	for _, customer := range s.customers {
		if filters != nil && filters.SearchTerm != "" {
			term := strings.ToLower(filters.SearchTerm)
			if !strings.Contains(strings.ToLower(customer.Name), term) &&
				!strings.Contains(customer.Phone, filters.SearchTerm) {
				continue
			}
		}
		cp := *customer
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastVisit.After(out[j].LastVisit) })

	if filters != nil && filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filters.PageSize
		if start >= len(out) {
			return nil, nil
		}
		end := start + filters.PageSize
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, nil
}

func (s *customerStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for phone, customer := range s.customers {
		if customer.ID == id {
			delete(s.customers, phone)
			return nil
		}
	}
	return apperrors.NewNotFound("customer", nil)
}

type settingsStore Store

func (s *settingsStore) Get(_ context.Context) (*model.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return model.DefaultSettings(), nil
	}
	cp := *s.settings
	return &cp, nil
}

func (s *settingsStore) Update(_ context.Context, settings *model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.UpdatedAt = time.Now()
	cp := *settings
	s.settings = &cp
	return nil
}
