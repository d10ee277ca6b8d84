package service

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/larderhq/larder/internal/calendar"
	"github.com/larderhq/larder/internal/planner"
	"github.com/larderhq/larder/internal/repository"
	"github.com/larderhq/larder/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires the full service stack over a fresh in-memory database
// with a seeded random source, so plan outcomes are reproducible.
type testEnv struct {
	db       *sql.DB
	tags     TagService
	recipes  RecipeService
	rules    RuleService
	settings SettingsService
	plans    PlanService
}

func newTestEnv(t *testing.T, seed int64) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	tagRepo := repository.NewSQLiteTagRepo(database)
	recipeRepo := repository.NewSQLiteRecipeRepo(database)
	ruleRepo := repository.NewSQLiteDayRuleRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	planRepo := repository.NewSQLiteMealPlanRepo(database)
	itemRepo := repository.NewSQLiteMealPlanItemRepo(database)

	sel := planner.NewSelector(rand.New(rand.NewSource(seed)))

	return &testEnv{
		db:       database,
		tags:     NewTagService(tagRepo),
		recipes:  NewRecipeService(recipeRepo, tagRepo, uow),
		rules:    NewRuleService(ruleRepo, tagRepo),
		settings: NewSettingsService(settingsRepo),
		plans: NewPlanService(
			planRepo, itemRepo, recipeRepo, tagRepo, ruleRepo, settingsRepo, sel, uow,
		),
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func (e *testEnv) seedRecipe(t *testing.T, ctx context.Context, name string, tagNames ...string) int64 {
	t.Helper()
	r := testutil.NewTestRecipe(name)
	require.NoError(t, e.recipes.Create(ctx, r, tagNames))
	return r.ID
}
