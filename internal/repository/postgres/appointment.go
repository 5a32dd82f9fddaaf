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

// All appointment repository methods here

func (r *appointmentRepository) CreateIfSlotFree(ctx context.Context, appointment *model.Appointment) error {
	// Conditional insert keeps the conflict check and the write in one
	// statement, so two racing bookings cannot both claim the slot.
	// First writer wins; the loser sees zero rows affected.
	query := `
		INSERT INTO appointments (
			id, customer_name, customer_phone, staff_id, category_id,
			service_name, price, date, time, status, source,
			reminder_sent, created_at, updated_at
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		WHERE NOT EXISTS (
			SELECT 1 FROM appointments
			WHERE staff_id = $4 AND date = $8 AND time = $9
			AND status != 'cancelled'
		)
	`
	result, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.CustomerName,
		appointment.CustomerPhone,
		appointment.StaffID,
		appointment.CategoryID,
		appointment.ServiceName,
		appointment.Price,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.Source,
		appointment.ReminderSent,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewConflict("slot already booked")
	}

	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, customer_name, customer_phone, staff_id, category_id,
			   service_name, price, date, time, status, source,
			   reminder_sent, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("appointment", nil)
	}

	return nil
}

func (r *appointmentRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE appointments
		SET reminder_sent = TRUE, updated_at = $1
		WHERE id = $2 AND reminder_sent = FALSE
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("appointment", nil)
	}

	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("appointment", nil)
	}

	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, customer_name, customer_phone, staff_id, category_id,
			   service_name, price, date, time, status, source,
			   reminder_sent, created_at, updated_at
		FROM appointments
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.StaffID != uuid.Nil {
			query += fmt.Sprintf(" AND staff_id = $%d", argCount)
			args = append(args, filters.StaffID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if filters.Date != "" {
			query += fmt.Sprintf(" AND date = $%d", argCount)
			args = append(args, filters.Date)
			argCount++
		}
	}

	query += " ORDER BY date ASC, time ASC, created_at ASC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForStaffDate(ctx context.Context, staffID uuid.UUID, date string) ([]*model.Appointment, error) {
	query := `
		SELECT id, customer_name, customer_phone, staff_id, category_id,
			   service_name, price, date, time, status, source,
			   reminder_sent, created_at, updated_at
		FROM appointments
		WHERE staff_id = $1 AND date = $2 AND status != 'cancelled'
		ORDER BY time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) HasConflict(ctx context.Context, staffID uuid.UUID, date, timeOfDay string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE staff_id = $1 AND date = $2 AND time = $3
			AND status != 'cancelled'
		)
	`
	var hasConflict bool
	err := r.db.GetContext(ctx, &hasConflict, query, staffID, date, timeOfDay)
	if err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return hasConflict, nil
}

func (r *appointmentRepository) HasAnyConflict(ctx context.Context, date, timeOfDay string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE date = $1 AND time = $2
			AND status != 'cancelled'
		)
	`
	var hasConflict bool
	err := r.db.GetContext(ctx, &hasConflict, query, date, timeOfDay)
	if err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return hasConflict, nil
}

func (r *appointmentRepository) ListConfirmedUnreminded(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT id, customer_name, customer_phone, staff_id, category_id,
			   service_name, price, date, time, status, source,
			   reminder_sent, created_at, updated_at
		FROM appointments
		WHERE status = 'confirmed' AND reminder_sent = FALSE
		ORDER BY date ASC, time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list unreminded appointments: %w", err)
	}
	return appointments, nil
}
