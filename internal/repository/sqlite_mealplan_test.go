package repository

import (
	"context"
	"testing"

	"github.com/larderhq/larder/internal/calendar"
	"github.com/larderhq/larder/internal/domain"
	"github.com/larderhq/larder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealPlanRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMealPlanRepo(db)
	ctx := context.Background()

	start, _ := calendar.ParseDate("2026-03-02")
	end, _ := calendar.ParseDate("2026-03-08")
	plan := testutil.NewTestPlan("Mar 2 - Mar 8", start, end)
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, fetched.ID)
	assert.Equal(t, "Mar 2 - Mar 8", fetched.Name)
	assert.Equal(t, "2026-03-02", calendar.FormatDate(fetched.StartDate))
	assert.Equal(t, "2026-03-08", calendar.FormatDate(fetched.EndDate))
	assert.False(t, fetched.IsActive)
}

func TestMealPlanRepo_GetActive_NoneActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMealPlanRepo(db)
	ctx := context.Background()

	_, err := repo.GetActive(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealPlanRepo_SetActive_Handover(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMealPlanRepo(db)
	ctx := context.Background()

	s1, _ := calendar.ParseDate("2026-03-02")
	e1, _ := calendar.ParseDate("2026-03-08")
	s2, _ := calendar.ParseDate("2026-03-09")
	e2, _ := calendar.ParseDate("2026-03-15")

	first := testutil.NewTestPlan("first", s1, e1, testutil.WithActive(true))
	second := testutil.NewTestPlan("second", s2, e2)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, repo.SetActive(ctx, second.ID))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	old, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsActive, "the superseded plan keeps its rows but loses the flag")
}

func TestMealPlanRepo_SetActive_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMealPlanRepo(db)
	ctx := context.Background()

	err := repo.SetActive(ctx, "no-such-plan")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealPlanRepo_List_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMealPlanRepo(db)
	ctx := context.Background()

	s1, _ := calendar.ParseDate("2026-02-23")
	e1, _ := calendar.ParseDate("2026-03-01")
	s2, _ := calendar.ParseDate("2026-03-02")
	e2, _ := calendar.ParseDate("2026-03-08")
	require.NoError(t, repo.Create(ctx, testutil.NewTestPlan("older", s1, e1)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPlan("newer", s2, e2)))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "newer", plans[0].Name)
	assert.Equal(t, "older", plans[1].Name)
}

func TestMealPlanRepo_Delete_CascadesItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMealPlanRepo(db)
	itemRepo := NewSQLiteMealPlanItemRepo(db)
	ctx := context.Background()

	start, _ := calendar.ParseDate("2026-03-02")
	end, _ := calendar.ParseDate("2026-03-08")
	plan := testutil.NewTestPlan("doomed", start, end)
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, itemRepo.CreateBatch(ctx, []*domain.MealPlanItem{
		testutil.NewTestItem(plan.ID, start, nil),
	}))

	require.NoError(t, repo.Delete(ctx, plan.ID))

	items, err := itemRepo.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "items should be cascade-deleted with their plan")
}
