package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

func (r *customerRepository) UpsertOnBooking(ctx context.Context, name, phone string, price float64) (*model.Customer, error) {
	query := `
		INSERT INTO customers (
			id, name, phone, total_appointments, total_spent,
			last_visit, created_at, updated_at
		) VALUES ($1, $2, $3, 1, $4, $5, $5, $5)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			total_appointments = customers.total_appointments + 1,
			total_spent = customers.total_spent + EXCLUDED.total_spent,
			last_visit = EXCLUDED.last_visit,
			updated_at = EXCLUDED.updated_at
		RETURNING id, name, phone, total_appointments, total_spent,
			last_visit, created_at, updated_at
	`
	now := time.Now()

	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, query, uuid.New(), name, phone, price, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	query := `
		SELECT id, name, phone, total_appointments, total_spent,
			   last_visit, created_at, updated_at
		FROM customers
		WHERE phone = $1
	`
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, query, phone)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("customer", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, filters *model.CustomerFilters) ([]*model.Customer, error) {
	query := `
		SELECT id, name, phone, total_appointments, total_spent,
			   last_visit, created_at, updated_at
		FROM customers
	`
	args := []interface{}{}

	if filters != nil && filters.SearchTerm != "" {
		query += " WHERE name ILIKE $1 OR phone LIKE $1"
		args = append(args, "%"+filters.SearchTerm+"%")
	}

	query += " ORDER BY last_visit DESC"

	if filters != nil && filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filters.PageSize, (page-1)*filters.PageSize)
	}

	var customers []*model.Customer
	err := r.db.SelectContext(ctx, &customers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM customers
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("customer", nil)
	}

	return nil
}
