package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

const (
	cacheKey = "settings"
	cacheTTL = 30 * time.Second
)

// Service caches the single settings row; every booking consults it, so
// reads must not hit storage each time. The cache is invalidated on
// update.
type Service struct {
	repo  repository.SettingsRepository
	cache *cache.Cache
}

func NewService(repo repository.SettingsRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *Service) Get(ctx context.Context) (*model.Settings, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*model.Settings), nil
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s.cache.Set(cacheKey, settings, cache.DefaultExpiration)
	return settings, nil
}

func (s *Service) Update(ctx context.Context, req *model.UpdateSettingsRequest) (*model.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if req.AutoConfirm != nil {
		settings.AutoConfirm = *req.AutoConfirm
	}
	if req.WhatsappReminder != nil {
		settings.WhatsappReminder = *req.WhatsappReminder
	}
	if req.AutoSendReminders != nil {
		settings.AutoSendReminders = *req.AutoSendReminders
	}
	if req.ReminderHours != nil {
		if *req.ReminderHours <= 0 {
			return nil, apperrors.NewValidation("reminder hours must be positive")
		}
		settings.ReminderHours = *req.ReminderHours
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.cache.Delete(cacheKey)
	return settings, nil
}
