package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
)

type Service struct {
	repo repository.CustomerRepository
}

func NewService(repo repository.CustomerRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	return s.repo.GetByPhone(ctx, phone)
}

func (s *Service) List(ctx context.Context, filters *model.CustomerFilters) ([]*model.Customer, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
