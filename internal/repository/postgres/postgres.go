package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/repository"
)

type staffRepository struct {
	db *sqlx.DB
}

type availabilityRepository struct {
	db *sqlx.DB
}

type catalogRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type customerRepository struct {
	db *sqlx.DB
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func NewCatalogRepository(db *sqlx.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewCustomerRepository(db *sqlx.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}
