package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/model"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

func (r *catalogRepository) CreateCategory(ctx context.Context, category *model.ServiceCategory) error {
	query := `
		INSERT INTO service_categories (id, name, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	category.ID = uuid.New()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Icon,
		category.CreatedAt,
		category.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	for i := range category.Subcategories {
		sub := &category.Subcategories[i]
		sub.ID = uuid.New()
		sub.CategoryID = category.ID
		sub.Position = i
		if err := insertSubcategoryTx(ctx, tx, sub); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertSubcategoryTx(ctx context.Context, tx *sqlx.Tx, sub *model.Subcategory) error {
	query := `
		INSERT INTO service_subcategories (
			id, category_id, name, duration_min, price, position
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, query,
		sub.ID,
		sub.CategoryID,
		sub.Name,
		sub.DurationMin,
		sub.Price,
		sub.Position,
	); err != nil {
		return fmt.Errorf("failed to create subcategory: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetCategory(ctx context.Context, id uuid.UUID) (*model.ServiceCategory, error) {
	query := `
		SELECT id, name, icon, created_at, updated_at
		FROM service_categories
		WHERE id = $1
	`
	var category model.ServiceCategory
	err := r.db.GetContext(ctx, &category, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("service category", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	subs, err := r.listSubcategories(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Subcategories = subs
	return &category, nil
}

func (r *catalogRepository) listSubcategories(ctx context.Context, categoryID uuid.UUID) ([]model.Subcategory, error) {
	query := `
		SELECT id, category_id, name, duration_min, price, position
		FROM service_subcategories
		WHERE category_id = $1
		ORDER BY position ASC
	`
	var subs []model.Subcategory
	if err := r.db.SelectContext(ctx, &subs, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	return subs, nil
}

func (r *catalogRepository) UpdateCategory(ctx context.Context, category *model.ServiceCategory) error {
	query := `
		UPDATE service_categories
		SET name = $1, icon = $2, updated_at = $3
		WHERE id = $4
	`
	category.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		category.Name,
		category.Icon,
		category.UpdatedAt,
		category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("service category", nil)
	}

	return nil
}

func (r *catalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	// Subcategories go with the category. Appointments already
	// referencing the category keep their copied service name and
	// price, matching the admin delete behavior.
	query := `
		DELETE FROM service_categories
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("service category", nil)
	}

	return nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*model.ServiceCategory, error) {
	query := `
		SELECT id, name, icon, created_at, updated_at
		FROM service_categories
		ORDER BY name ASC
	`
	var categories []*model.ServiceCategory
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	for _, category := range categories {
		subs, err := r.listSubcategories(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		category.Subcategories = subs
	}
	return categories, nil
}

func (r *catalogRepository) GetSubcategory(ctx context.Context, categoryID uuid.UUID, name string) (*model.Subcategory, error) {
	query := `
		SELECT id, category_id, name, duration_min, price, position
		FROM service_subcategories
		WHERE category_id = $1 AND name = $2
	`
	var sub model.Subcategory
	err := r.db.GetContext(ctx, &sub, query, categoryID, name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("service", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subcategory: %w", err)
	}
	return &sub, nil
}

func (r *catalogRepository) AddSubcategory(ctx context.Context, sub *model.Subcategory) error {
	query := `
		INSERT INTO service_subcategories (
			id, category_id, name, duration_min, price, position
		)
		SELECT $1, $2, $3, $4, $5,
			COALESCE(MAX(position) + 1, 0)
		FROM service_subcategories
		WHERE category_id = $2
	`
	sub.ID = uuid.New()

	if _, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.CategoryID,
		sub.Name,
		sub.DurationMin,
		sub.Price,
	); err != nil {
		return fmt.Errorf("failed to add subcategory: %w", err)
	}
	return nil
}

func (r *catalogRepository) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM service_subcategories
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete subcategory: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("service", nil)
	}

	return nil
}
