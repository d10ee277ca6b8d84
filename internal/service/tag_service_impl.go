package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/larderhq/larder/internal/domain"
	"github.com/larderhq/larder/internal/repository"
)

type tagService struct {
	tags repository.TagRepo
}

func NewTagService(tags repository.TagRepo) TagService {
	return &tagService{tags: tags}
}

func (s *tagService) Create(ctx context.Context, name, description string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name cannot be empty")
	}
	now := time.Now().UTC()
	t := &domain.Tag{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tagService) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	return s.tags.GetByName(ctx, strings.TrimSpace(name))
}

func (s *tagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) Update(ctx context.Context, t *domain.Tag) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tags.Update(ctx, t)
}

func (s *tagService) Delete(ctx context.Context, id int64) error {
	return s.tags.Delete(ctx, id)
}
