package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/larderhq/larder/internal/app"
	"github.com/larderhq/larder/internal/calendar"
	"github.com/larderhq/larder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday; anchoring now inside that week with the
// default Monday week start yields the window Mar 2 - Mar 8.
const testNow = "2026-03-04"

func TestPlanService_Generate_RuledDayAlwaysGetsTheOnlyMatch(t *testing.T) {
	ctx := context.Background()

	for seed := int64(1); seed <= 10; seed++ {
		env := newTestEnv(t, seed)

		fishID := env.seedRecipe(t, ctx, "Grilled Salmon", "fish")
		env.seedRecipe(t, ctx, "Spaghetti")
		env.seedRecipe(t, ctx, "Roast Chicken")

		_, err := env.rules.Set(ctx, 1, nil, "fish")
		require.NoError(t, err)

		now := mustDate(t, testNow)
		resp, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
		require.NoError(t, err)

		require.Len(t, resp.Days, 7)
		monday := resp.Days[0]
		assert.Equal(t, 1, monday.Weekday)
		assert.Equal(t, "fish", monday.TagName)
		require.NotNil(t, monday.Recipe, "seed %d: the ruled day must be assigned", seed)
		assert.Equal(t, fishID, monday.Recipe.ID, "seed %d: only one recipe satisfies the rule", seed)
	}
}

func TestPlanService_Generate_EmptyPoolYieldsUnassignedSkeleton(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()

	now := mustDate(t, testNow)
	resp, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err, "an empty pool degrades, it does not fail")

	assert.Equal(t, 0, resp.AssignedDays)
	assert.Equal(t, 7, resp.TotalDays)
	assert.NotEmpty(t, resp.Warnings)
	for _, day := range resp.Days {
		assert.Nil(t, day.Recipe)
	}

	// The skeleton is persisted and active like any other plan.
	view, err := env.plans.ViewActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp.Plan.ID, view.Plan.ID)
	assert.Equal(t, 7, view.TotalDays)
	assert.Equal(t, 0, view.AssignedDays)
}

func TestPlanService_Generate_WindowAndName(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()
	env.seedRecipe(t, ctx, "Anything")

	now := mustDate(t, testNow)
	resp, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", calendar.FormatDate(resp.Plan.StartDate))
	assert.Equal(t, "2026-03-08", calendar.FormatDate(resp.Plan.EndDate))
	assert.Equal(t, "Mar 2 - Mar 8", resp.Plan.Name)

	// Weekdays cycle Monday through Sunday.
	for i, day := range resp.Days {
		assert.Equal(t, i+1, day.Weekday)
	}
}

// A zoned now must anchor on the caller's calendar day. Sunday evening
// in Los Angeles is already Monday in UTC; the window still starts on
// the Monday of the almost-finished local week.
func TestPlanService_Generate_ZonedNowAnchorsOnLocalDay(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()
	env.seedRecipe(t, ctx, "Anything")

	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	now := time.Date(2026, time.March, 8, 18, 0, 0, 0, loc) // Sunday 6pm

	resp, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", calendar.FormatDate(resp.Plan.StartDate))
	assert.Equal(t, "2026-03-08", calendar.FormatDate(resp.Plan.EndDate))

	// Sunday of the window still covers the zoned now.
	status, err := env.plans.Status(ctx, app.StatusRequest{Now: &now})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStateActive, status.State)
	assert.Equal(t, 1, status.DaysRemaining)
}

func TestPlanService_Generate_SupersedesActivePlan(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()
	env.seedRecipe(t, ctx, "Anything")

	now := mustDate(t, testNow)
	first, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)
	second, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerRecreate, Now: &now})
	require.NoError(t, err)

	view, err := env.plans.ViewActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Plan.ID, view.Plan.ID)

	plans, err := env.plans.List(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2, "the superseded plan is kept, not deleted")
	for _, p := range plans {
		if p.ID == first.Plan.ID {
			assert.False(t, p.IsActive)
		}
	}
}

func TestPlanService_Generate_UntaggedRecipesNeverFillConstrainedDays(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()

	env.seedRecipe(t, ctx, "Plain Pasta")
	_, err := env.tags.Create(ctx, "fish", "")
	require.NoError(t, err)
	_, err = env.rules.Set(ctx, 1, nil, "fish")
	require.NoError(t, err)

	now := mustDate(t, testNow)
	resp, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)

	assert.Nil(t, resp.Days[0].Recipe, "an untagged pool cannot satisfy a constrained day")
	assert.Equal(t, 6, resp.AssignedDays, "unconstrained days still draw from the pool")
	assert.Equal(t, 1, resp.RulesApplied)
}

func TestPlanService_Generate_FortnightlyRuleHitsOnlyItsWeek(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()

	fishID := env.seedRecipe(t, ctx, "Fish Pie", "fish")
	week2 := 2
	_, err := env.rules.Set(ctx, 3, &week2, "fish")
	require.NoError(t, err)

	require.NoError(t, env.settings.Update(ctx, &domain.Settings{
		PlannerDuration: 14,
		WeekStartDay:    1,
		Fortnightly:     true,
	}))

	now := mustDate(t, testNow)
	resp, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)
	require.Len(t, resp.Days, 14)

	week1Wed := resp.Days[2]
	week2Wed := resp.Days[9]
	assert.Empty(t, week1Wed.TagName, "week-1 Wednesday is unconstrained")
	assert.Equal(t, "fish", week2Wed.TagName)
	require.NotNil(t, week2Wed.Recipe)
	assert.Equal(t, fishID, week2Wed.Recipe.ID)
}

func TestPlanService_Status_NoPlan(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()

	now := mustDate(t, testNow)
	status, err := env.plans.Status(ctx, app.StatusRequest{Now: &now})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStateNone, status.State)
	assert.Equal(t, domain.ActionSuggestCreate, status.Action, "an empty pool downgrades to a suggestion")
	assert.False(t, status.HasRecipes)

	env.seedRecipe(t, ctx, "Anything")
	status, err = env.plans.Status(ctx, app.StatusRequest{Now: &now})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreateNew, status.Action)
	assert.True(t, status.HasRecipes)
}

func TestPlanService_Status_ActiveExpiredFuture(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()
	env.seedRecipe(t, ctx, "Anything")

	now := mustDate(t, testNow)
	_, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)

	// Inside the window.
	status, err := env.plans.Status(ctx, app.StatusRequest{Now: &now})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStateActive, status.State)
	assert.Equal(t, domain.ActionContinue, status.Action)
	assert.Equal(t, 5, status.DaysRemaining, "Wed through Sun inclusive")

	// After the window ends.
	later := mustDate(t, "2026-03-10")
	status, err = env.plans.Status(ctx, app.StatusRequest{Now: &later})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStateExpired, status.State)
	assert.Equal(t, domain.ActionCreateNew, status.Action)

	// Before the window starts.
	earlier := mustDate(t, "2026-02-27")
	status, err = env.plans.Status(ctx, app.StatusRequest{Now: &earlier})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStateFutureOnly, status.State)
	assert.Equal(t, domain.ActionContinue, status.Action)
}

func TestPlanService_Swap_NoActivePlan(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()

	_, err := env.plans.Swap(ctx, app.SwapRequest{Date: mustDate(t, testNow)})
	var planErr *app.PlanError
	require.True(t, errors.As(err, &planErr))
	assert.Equal(t, app.PlanErrNoActivePlan, planErr.Code)
}

func TestPlanService_Swap_DateOutsidePlan(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()
	env.seedRecipe(t, ctx, "Anything")

	now := mustDate(t, testNow)
	_, err := env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)

	_, err = env.plans.Swap(ctx, app.SwapRequest{Date: mustDate(t, "2026-03-20")})
	var planErr *app.PlanError
	require.True(t, errors.As(err, &planErr))
	assert.Equal(t, app.PlanErrDateNotInPlan, planErr.Code)
	assert.NotEmpty(t, planErr.PlanID)
}

func TestPlanService_Swap_NeverRepeatsWithAlternatives(t *testing.T) {
	env := newTestEnv(t, 7)
	ctx := context.Background()

	env.seedRecipe(t, ctx, "Salmon", "fish")
	env.seedRecipe(t, ctx, "Fish Pie", "fish")
	_, err := env.rules.Set(ctx, 1, nil, "fish")
	require.NoError(t, err)

	now := mustDate(t, testNow)
	_, err = env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)

	monday := mustDate(t, "2026-03-02")
	for i := 0; i < 5; i++ {
		resp, err := env.plans.Swap(ctx, app.SwapRequest{Date: monday})
		require.NoError(t, err)
		require.NotNil(t, resp.Picked)
		require.NotNil(t, resp.Previous)
		assert.NotEqual(t, resp.Previous.ID, resp.Picked.ID,
			"swap %d: two compatible recipes always allow a change", i)
		assert.False(t, resp.Repeated)
	}

	// The last swap is what the stored plan shows.
	view, err := env.plans.ViewActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, view.Days[0].Recipe)
}

func TestPlanService_Swap_SingleCompatibleRepeats(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()

	onlyID := env.seedRecipe(t, ctx, "Salmon", "fish")
	env.seedRecipe(t, ctx, "Spaghetti")
	_, err := env.rules.Set(ctx, 1, nil, "fish")
	require.NoError(t, err)

	now := mustDate(t, testNow)
	_, err = env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)

	resp, err := env.plans.Swap(ctx, app.SwapRequest{Date: mustDate(t, "2026-03-02")})
	require.NoError(t, err)
	require.NotNil(t, resp.Picked)
	assert.Equal(t, onlyID, resp.Picked.ID, "repetition beats unassigning the day")
	assert.True(t, resp.Repeated)
}

// Generate degrades an unreadable rule store to unconstrained days;
// Swap follows the same policy rather than refusing outright.
func TestPlanService_Swap_DegradesWhenRulesUnreadable(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()

	env.seedRecipe(t, ctx, "Salmon", "fish")
	env.seedRecipe(t, ctx, "Spaghetti")
	_, err := env.rules.Set(ctx, 1, nil, "fish")
	require.NoError(t, err)

	now := mustDate(t, testNow)
	_, err = env.plans.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerManual, Now: &now})
	require.NoError(t, err)

	_, err = env.db.Exec(`DROP TABLE day_rules`)
	require.NoError(t, err)

	resp, err := env.plans.Swap(ctx, app.SwapRequest{Date: mustDate(t, "2026-03-02")})
	require.NoError(t, err, "a broken rule store degrades to an unconstrained swap")
	require.NotNil(t, resp.Picked)
}

func TestPlanService_EnsureActivePlan(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()
	env.seedRecipe(t, ctx, "Anything")
	now := mustDate(t, testNow)

	// Auto-create disabled: nothing happens.
	result, err := env.plans.EnsureActivePlan(ctx, now)
	require.NoError(t, err)
	assert.False(t, result.Created)
	require.NotNil(t, result.Status)
	assert.Equal(t, domain.PlanStateNone, result.Status.State)

	// Enabled: a plan is generated.
	require.NoError(t, env.settings.Update(ctx, &domain.Settings{
		PlannerDuration: 7,
		WeekStartDay:    1,
		AutoCreatePlans: true,
	}))
	result, err = env.plans.EnsureActivePlan(ctx, now)
	require.NoError(t, err)
	assert.True(t, result.Created)
	require.NotNil(t, result.Generate)

	// A covering plan short-circuits.
	result, err = env.plans.EnsureActivePlan(ctx, now)
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, domain.PlanStateActive, result.Status.State)
}
