package repository

import (
	"context"
	"errors"
	"time"

	"github.com/larderhq/larder/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist. Callers
// check it with errors.Is.
var ErrNotFound = errors.New("not found")

type TagRepo interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id int64) error
}

type RecipeRepo interface {
	Create(ctx context.Context, r *domain.Recipe) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	// List returns the full recipe pool with tag memberships attached,
	// ordered by creation.
	List(ctx context.Context) ([]domain.Recipe, error)
	Update(ctx context.Context, r *domain.Recipe) error
	// SetTags replaces the recipe's tag memberships wholesale.
	SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type DayRuleRepo interface {
	// Upsert inserts or replaces the rule occupying the
	// (week index, weekday) slot.
	Upsert(ctx context.Context, r *domain.DayRule) error
	List(ctx context.Context) ([]domain.DayRule, error)
	GetBySlot(ctx context.Context, weekIndex *int, dayOfWeek int) (*domain.DayRule, error)
	DeleteBySlot(ctx context.Context, weekIndex *int, dayOfWeek int) error
	DeleteAll(ctx context.Context) error
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}

type MealPlanRepo interface {
	Create(ctx context.Context, p *domain.MealPlan) error
	GetByID(ctx context.Context, id string) (*domain.MealPlan, error)
	// GetActive returns the single active plan, or ErrNotFound.
	GetActive(ctx context.Context) (*domain.MealPlan, error)
	List(ctx context.Context) ([]*domain.MealPlan, error)
	// SetActive hands the active flag to the given plan, deactivating
	// whichever plan held it. Run inside a transaction when the handover
	// must be atomic with other writes.
	SetActive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type MealPlanItemRepo interface {
	// CreateBatch inserts a generated plan's items in one statement batch.
	CreateBatch(ctx context.Context, items []*domain.MealPlanItem) error
	ListByPlan(ctx context.Context, planID string) ([]*domain.MealPlanItem, error)
	GetByPlanDate(ctx context.Context, planID string, date time.Time) (*domain.MealPlanItem, error)
	// UpdateRecipe is the single-day swap write; it never touches other
	// columns or other items.
	UpdateRecipe(ctx context.Context, itemID string, recipeID *int64) error
}
