package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jwalitptl/salon-api/internal/model"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (id, name, specialty, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	staff.ID = uuid.New()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		staff.ID,
		staff.Name,
		staff.Specialty,
		staff.Avatar,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `
		SELECT id, name, specialty, avatar, created_at, updated_at
		FROM staff
		WHERE id = $1
	`
	var staff model.Staff
	err := r.db.GetContext(ctx, &staff, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("staff", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	query := `
		UPDATE staff
		SET name = $1, specialty = $2, avatar = $3, updated_at = $4
		WHERE id = $5
	`
	staff.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		staff.Name,
		staff.Specialty,
		staff.Avatar,
		staff.UpdatedAt,
		staff.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("staff", nil)
	}

	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM staff
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("staff", nil)
	}

	return nil
}

func (r *staffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	query := `
		SELECT id, name, specialty, avatar, created_at, updated_at
		FROM staff
		ORDER BY name ASC
	`
	var staff []*model.Staff
	err := r.db.SelectContext(ctx, &staff, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

type availabilityRow struct {
	StaffID     uuid.UUID      `db:"staff_id"`
	WorkingDays pq.Int64Array  `db:"working_days"`
	WorkStart   string         `db:"work_start"`
	WorkEnd     string         `db:"work_end"`
	OffDays     pq.StringArray `db:"off_days"`
	IsActive    bool           `db:"is_active"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row *availabilityRow) toModel() *model.Availability {
	days := make([]time.Weekday, 0, len(row.WorkingDays))
	for _, d := range row.WorkingDays {
		days = append(days, time.Weekday(d))
	}
	return &model.Availability{
		StaffID:     row.StaffID,
		WorkingDays: days,
		WorkStart:   row.WorkStart,
		WorkEnd:     row.WorkEnd,
		OffDays:     row.OffDays,
		IsActive:    row.IsActive,
		UpdatedAt:   row.UpdatedAt,
	}
}

func (r *availabilityRepository) Get(ctx context.Context, staffID uuid.UUID) (*model.Availability, error) {
	query := `
		SELECT staff_id, working_days, work_start, work_end, off_days,
			   is_active, updated_at
		FROM staff_availability
		WHERE staff_id = $1
	`
	var row availabilityRow
	err := r.db.GetContext(ctx, &row, query, staffID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return row.toModel(), nil
}

func (r *availabilityRepository) Upsert(ctx context.Context, availability *model.Availability) error {
	query := `
		INSERT INTO staff_availability (
			staff_id, working_days, work_start, work_end, off_days,
			is_active, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (staff_id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			off_days = EXCLUDED.off_days,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`
	availability.UpdatedAt = time.Now()

	days := make(pq.Int64Array, 0, len(availability.WorkingDays))
	for _, d := range availability.WorkingDays {
		days = append(days, int64(d))
	}

	_, err := r.db.ExecContext(ctx, query,
		availability.StaffID,
		days,
		availability.WorkStart,
		availability.WorkEnd,
		pq.StringArray(availability.OffDays),
		availability.IsActive,
		availability.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) Delete(ctx context.Context, staffID uuid.UUID) error {
	query := `
		DELETE FROM staff_availability
		WHERE staff_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, staffID); err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return nil
}
