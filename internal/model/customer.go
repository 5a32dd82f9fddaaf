package model

import "time"

// Customer is a derived record keyed by normalized phone, aggregated
// across the customer's bookings. It is upserted on every appointment,
// never replaced.
type Customer struct {
	Base
	Name              string    `db:"name" json:"name"`
	Phone             string    `db:"phone" json:"phone"`
	TotalAppointments int       `db:"total_appointments" json:"total_appointments"`
	TotalSpent        float64   `db:"total_spent" json:"total_spent"`
	LastVisit         time.Time `db:"last_visit" json:"last_visit"`
}

type CustomerFilters struct {
	SearchTerm string
	Pagination
}
