package service

import (
	"context"
	"errors"

	"github.com/larderhq/larder/internal/domain"
	"github.com/larderhq/larder/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
}

func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.settings.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *settingsService) Update(ctx context.Context, settings *domain.Settings) error {
	if settings.ID == "" {
		settings.ID = domain.DefaultSettings().ID
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.settings.Upsert(ctx, settings)
}
