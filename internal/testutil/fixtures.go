package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/larderhq/larder/internal/domain"
)

// Recipe options
type RecipeOption func(*domain.Recipe)

func WithTagIDs(ids ...int64) RecipeOption {
	return func(r *domain.Recipe) {
		r.TagIDs = ids
	}
}

func WithURL(u string) RecipeOption {
	return func(r *domain.Recipe) {
		r.URL = u
	}
}

func WithDescription(d string) RecipeOption {
	return func(r *domain.Recipe) {
		r.Description = d
	}
}

func NewTestRecipe(name string, opts ...RecipeOption) *domain.Recipe {
	now := time.Now().UTC()
	r := &domain.Recipe{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestTag(name string) *domain.Tag {
	now := time.Now().UTC()
	return &domain.Tag{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DayRule options
type RuleOption func(*domain.DayRule)

func WithWeekIndex(w int) RuleOption {
	return func(r *domain.DayRule) {
		r.WeekIndex = &w
	}
}

func NewTestRule(dayOfWeek int, tagID int64, opts ...RuleOption) *domain.DayRule {
	now := time.Now().UTC()
	r := &domain.DayRule{
		DayOfWeek: dayOfWeek,
		TagID:     tagID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Settings options
type SettingsOption func(*domain.Settings)

func WithDuration(d int) SettingsOption {
	return func(s *domain.Settings) {
		s.PlannerDuration = d
	}
}

func WithWeekStartDay(d int) SettingsOption {
	return func(s *domain.Settings) {
		s.WeekStartDay = d
	}
}

func WithAutoCreate(b bool) SettingsOption {
	return func(s *domain.Settings) {
		s.AutoCreatePlans = b
	}
}

func WithFortnightly(b bool) SettingsOption {
	return func(s *domain.Settings) {
		s.Fortnightly = b
	}
}

func NewTestSettings(opts ...SettingsOption) *domain.Settings {
	s := domain.DefaultSettings()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MealPlan options
type PlanOption func(*domain.MealPlan)

func WithActive(b bool) PlanOption {
	return func(p *domain.MealPlan) {
		p.IsActive = b
	}
}

func NewTestPlan(name string, start, end time.Time, opts ...PlanOption) *domain.MealPlan {
	now := time.Now().UTC()
	p := &domain.MealPlan{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestItem(planID string, date time.Time, recipeID *int64) *domain.MealPlanItem {
	now := time.Now().UTC()
	return &domain.MealPlanItem{
		ID:         uuid.New().String(),
		MealPlanID: planID,
		Date:       date,
		RecipeID:   recipeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
