package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/larderhq/larder/internal/db"
	"github.com/larderhq/larder/internal/domain"
	"github.com/larderhq/larder/internal/repository"
)

type recipeService struct {
	recipes repository.RecipeRepo
	tags    repository.TagRepo
	uow     db.UnitOfWork
}

func NewRecipeService(recipes repository.RecipeRepo, tags repository.TagRepo, uow db.UnitOfWork) RecipeService {
	return &recipeService{recipes: recipes, tags: tags, uow: uow}
}

func (s *recipeService) Create(ctx context.Context, r *domain.Recipe, tagNames []string) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("recipe name cannot be empty")
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTags := repository.NewSQLiteTagRepo(tx)
		txRecipes := repository.NewSQLiteRecipeRepo(tx)

		tagIDs, err := resolveTagNames(ctx, txTags, tagNames)
		if err != nil {
			return err
		}
		r.TagIDs = tagIDs
		return txRecipes.Create(ctx, r)
	})
}

func (s *recipeService) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	return s.recipes.GetByID(ctx, id)
}

func (s *recipeService) List(ctx context.Context) ([]domain.Recipe, error) {
	return s.recipes.List(ctx)
}

func (s *recipeService) Update(ctx context.Context, r *domain.Recipe) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("recipe name cannot be empty")
	}
	r.UpdatedAt = time.Now().UTC()
	return s.recipes.Update(ctx, r)
}

func (s *recipeService) SetTagsByName(ctx context.Context, recipeID int64, tagNames []string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTags := repository.NewSQLiteTagRepo(tx)
		txRecipes := repository.NewSQLiteRecipeRepo(tx)

		if _, err := txRecipes.GetByID(ctx, recipeID); err != nil {
			return err
		}
		tagIDs, err := resolveTagNames(ctx, txTags, tagNames)
		if err != nil {
			return err
		}
		return txRecipes.SetTags(ctx, recipeID, tagIDs)
	})
}

func (s *recipeService) Delete(ctx context.Context, id int64) error {
	return s.recipes.Delete(ctx, id)
}

// resolveTagNames maps names to tag IDs, creating tags that do not exist.
// Blank names are skipped and duplicates collapse to one membership.
func resolveTagNames(ctx context.Context, tags repository.TagRepo, names []string) ([]int64, error) {
	var ids []int64
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		t, err := tags.GetByName(ctx, name)
		if errors.Is(err, repository.ErrNotFound) {
			now := time.Now().UTC()
			t = &domain.Tag{Name: name, CreatedAt: now, UpdatedAt: now}
			if err := tags.Create(ctx, t); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}
