package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

type Service struct {
	repo repository.CatalogRepository
}

func NewService(repo repository.CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(ctx context.Context, category *model.ServiceCategory) error {
	if category.Name == "" {
		return apperrors.NewValidation("category name is required")
	}
	if err := validateSubcategories(category.Subcategories); err != nil {
		return err
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*model.ServiceCategory, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) UpdateCategory(ctx context.Context, category *model.ServiceCategory) error {
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category and its subcategories. Existing
// appointments keep the service name and price they were booked with.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*model.ServiceCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) AddSubcategory(ctx context.Context, sub *model.Subcategory) error {
	if sub.Name == "" {
		return apperrors.NewValidation("service name is required")
	}
	if sub.DurationMin <= 0 {
		return apperrors.NewValidation("service duration must be positive")
	}
	if sub.Price < 0 {
		return apperrors.NewValidation("service price cannot be negative")
	}

	// Names are unique within a category.
	if existing, err := s.repo.GetSubcategory(ctx, sub.CategoryID, sub.Name); err == nil && existing != nil {
		return apperrors.NewValidation("service already exists in this category")
	} else if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check subcategory: %w", err)
	}

	if err := s.repo.AddSubcategory(ctx, sub); err != nil {
		return fmt.Errorf("failed to add subcategory: %w", err)
	}
	return nil
}

func (s *Service) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSubcategory(ctx, id)
}

func validateSubcategories(subs []model.Subcategory) error {
	seen := make(map[string]bool, len(subs))
	for _, sub := range subs {
		if sub.Name == "" {
			return apperrors.NewValidation("service name is required")
		}
		if sub.DurationMin <= 0 {
			return apperrors.NewValidation("service duration must be positive")
		}
		if sub.Price < 0 {
			return apperrors.NewValidation("service price cannot be negative")
		}
		if seen[sub.Name] {
			return apperrors.NewValidation("duplicate service name in category")
		}
		seen[sub.Name] = true
	}
	return nil
}
