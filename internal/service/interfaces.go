package service

import (
	"context"
	"time"

	"github.com/larderhq/larder/internal/app"
	"github.com/larderhq/larder/internal/domain"
)

type TagService interface {
	Create(ctx context.Context, name, description string) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id int64) error
}

type RecipeService interface {
	// Create stores the recipe, resolving tagNames to tag IDs and
	// creating any tags that do not exist yet.
	Create(ctx context.Context, r *domain.Recipe, tagNames []string) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context) ([]domain.Recipe, error)
	Update(ctx context.Context, r *domain.Recipe) error
	// SetTagsByName replaces the recipe's memberships with the named
	// tags, creating missing ones.
	SetTagsByName(ctx context.Context, recipeID int64, tagNames []string) error
	Delete(ctx context.Context, id int64) error
}

// RuleWithTag pairs a day rule with its resolved tag name for display.
type RuleWithTag struct {
	domain.DayRule
	TagName string
}

type RuleService interface {
	// Set installs a rule in the (weekIndex, dayOfWeek) slot, replacing
	// whatever rule held it. The tag must already exist.
	Set(ctx context.Context, dayOfWeek int, weekIndex *int, tagName string) (*domain.DayRule, error)
	List(ctx context.Context) ([]RuleWithTag, error)
	Clear(ctx context.Context, weekIndex *int, dayOfWeek int) error
	ClearAll(ctx context.Context) error
}

type SettingsService interface {
	// Get returns stored settings, or the defaults when none have been
	// saved yet.
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s *domain.Settings) error
}

type PlanService interface {
	Generate(ctx context.Context, req app.GenerateRequest) (*app.GenerateResponse, error)
	Status(ctx context.Context, req app.StatusRequest) (*app.StatusResponse, error)
	Swap(ctx context.Context, req app.SwapRequest) (*app.SwapResponse, error)
	ViewActive(ctx context.Context) (*app.GenerateResponse, error)
	List(ctx context.Context) ([]*domain.MealPlan, error)
	EnsureActivePlan(ctx context.Context, now time.Time) (*app.EnsureResult, error)
}
