package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/larderhq/larder/internal/app"
	"github.com/larderhq/larder/internal/calendar"
	"github.com/larderhq/larder/internal/db"
	"github.com/larderhq/larder/internal/domain"
	"github.com/larderhq/larder/internal/planner"
	"github.com/larderhq/larder/internal/repository"
)

type planService struct {
	plans    repository.MealPlanRepo
	items    repository.MealPlanItemRepo
	recipes  repository.RecipeRepo
	tags     repository.TagRepo
	rules    repository.DayRuleRepo
	settings repository.SettingsRepo
	selector *planner.Selector
	uow      db.UnitOfWork
}

func NewPlanService(
	plans repository.MealPlanRepo,
	items repository.MealPlanItemRepo,
	recipes repository.RecipeRepo,
	tags repository.TagRepo,
	rules repository.DayRuleRepo,
	settings repository.SettingsRepo,
	selector *planner.Selector,
	uow db.UnitOfWork,
) PlanService {
	return &planService{
		plans:    plans,
		items:    items,
		recipes:  recipes,
		tags:     tags,
		rules:    rules,
		settings: settings,
		selector: selector,
		uow:      uow,
	}
}

// Generate builds and persists a new plan window, then hands it the
// active flag. Settings are the only fatal input: rules, tags and
// recipes degrade to warnings so a broken pool still yields a plan
// skeleton with unassigned days.
func (s *planService) Generate(ctx context.Context, req app.GenerateRequest) (*app.GenerateResponse, error) {
	// Local wall clock: "today" is the caller's calendar day, not UTC's.
	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, &app.PlanError{Code: app.PlanErrSettings, Message: err.Error()}
	}

	anchor := calendar.WeekAnchor(now, settings.WeekStartDay)
	if req.StartDate != nil {
		anchor = calendar.Normalize(*req.StartDate)
	}
	window := calendar.WindowDates(anchor, settings.PlannerDuration)

	var warnings []string
	rules, err := s.rules.List(ctx)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("day rules unavailable, planning unconstrained: %v", err))
		rules = nil
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("tags unavailable: %v", err))
		tags = nil
	}
	pool, err := s.recipes.List(ctx)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("recipes unavailable, all days left unassigned: %v", err))
		pool = nil
	}
	if len(pool) == 0 && err == nil {
		warnings = append(warnings, "recipe pool is empty, all days left unassigned")
	}

	constraints := planner.ResolveConstraints(window, rules, tags, settings.Fortnightly)

	createdAt := time.Now().UTC()
	plan := &domain.MealPlan{
		ID:        uuid.New().String(),
		Name:      calendar.FormatDateRange(window[0].Date, window[len(window)-1].Date),
		StartDate: window[0].Date,
		EndDate:   window[len(window)-1].Date,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	resp := &app.GenerateResponse{
		Plan:      plan,
		TotalDays: len(window),
		Warnings:  warnings,
	}

	items := make([]*domain.MealPlanItem, 0, len(constraints))
	for _, c := range constraints {
		compatible := planner.CompatibleRecipes(pool, c.TagIDs)
		picked := s.selector.Pick(compatible, nil)

		item := &domain.MealPlanItem{
			ID:         uuid.New().String(),
			MealPlanID: plan.ID,
			Date:       c.Date.Date,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
		}
		day := app.DayAssignment{
			Date:    c.Date.Date,
			Weekday: c.Date.Weekday,
			TagName: c.TagName,
			ItemID:  item.ID,
		}
		if picked != nil {
			item.RecipeID = &picked.ID
			day.Recipe = picked
			resp.AssignedDays++
		}
		if c.RuleID != nil {
			resp.RulesApplied++
		}
		items = append(items, item)
		resp.Days = append(resp.Days, day)
	}

	// The plan row lands first; if the items batch fails the row stays
	// behind so the caller can recreate without losing the window.
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, &app.PlanError{Code: app.PlanErrInternal, Message: fmt.Sprintf("storing plan: %v", err)}
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteMealPlanItemRepo(tx)
		txPlans := repository.NewSQLiteMealPlanRepo(tx)
		if err := txItems.CreateBatch(ctx, items); err != nil {
			return err
		}
		return txPlans.SetActive(ctx, plan.ID)
	})
	if err != nil {
		return nil, &app.PlanError{
			Code:    app.PlanErrItemsPersist,
			Message: fmt.Sprintf("storing plan days: %v", err),
			PlanID:  plan.ID,
		}
	}
	plan.IsActive = true
	return resp, nil
}

// Status classifies the plan store relative to now.
func (s *planService) Status(ctx context.Context, req app.StatusRequest) (*app.StatusResponse, error) {
	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	today := calendar.Normalize(now)

	pool, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &app.StatusResponse{HasRecipes: len(pool) > 0}

	active, err := s.plans.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		resp.State = domain.PlanStateNone
		resp.Action = createAction(resp.HasRecipes)
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	resp.Plan = active
	switch {
	case active.Covers(today):
		resp.State = domain.PlanStateActive
		resp.Action = domain.ActionContinue
		resp.DaysRemaining = daysBetween(today, active.EndDate) + 1
	case today.After(active.EndDate):
		resp.State = domain.PlanStateExpired
		resp.Action = createAction(resp.HasRecipes)
	default:
		resp.State = domain.PlanStateFutureOnly
		resp.Action = domain.ActionContinue
		resp.DaysRemaining = daysBetween(active.StartDate, active.EndDate) + 1
	}
	return resp, nil
}

// Swap re-rolls one day of the active plan, never handing back the same
// recipe while an alternative exists.
func (s *planService) Swap(ctx context.Context, req app.SwapRequest) (*app.SwapResponse, error) {
	active, err := s.plans.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &app.PlanError{Code: app.PlanErrNoActivePlan, Message: "no active meal plan"}
	}
	if err != nil {
		return nil, err
	}

	date := calendar.Normalize(req.Date)
	if !active.Covers(date) {
		return nil, &app.PlanError{
			Code:    app.PlanErrDateNotInPlan,
			Message: fmt.Sprintf("%s is outside the active plan (%s)", calendar.FormatDate(date), active.Name),
			PlanID:  active.ID,
		}
	}

	item, err := s.items.GetByPlanDate(ctx, active.ID, date)
	if err != nil {
		return nil, err
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, &app.PlanError{Code: app.PlanErrSettings, Message: err.Error()}
	}
	pool, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, &app.PlanError{Code: app.PlanErrEmptyPool, Message: "no recipes to swap in"}
	}

	constraint, err := s.constraintFor(ctx, active, date, settings)
	if err != nil {
		return nil, err
	}

	compatible := planner.CompatibleRecipes(pool, constraint.TagIDs)
	picked := s.selector.Pick(compatible, item.RecipeID)

	var pickedID *int64
	if picked != nil {
		pickedID = &picked.ID
	}
	if err := s.items.UpdateRecipe(ctx, item.ID, pickedID); err != nil {
		return nil, err
	}

	resp := &app.SwapResponse{Date: date, Picked: picked}
	if item.RecipeID != nil {
		if prev, err := s.recipes.GetByID(ctx, *item.RecipeID); err == nil {
			resp.Previous = prev
		}
		resp.Repeated = picked != nil && picked.ID == *item.RecipeID
	}
	return resp, nil
}

// ViewActive loads the active plan with its days resolved for display.
func (s *planService) ViewActive(ctx context.Context) (*app.GenerateResponse, error) {
	active, err := s.plans.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &app.PlanError{Code: app.PlanErrNoActivePlan, Message: "no active meal plan"}
	}
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByPlan(ctx, active.ID)
	if err != nil {
		return nil, err
	}
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, &app.PlanError{Code: app.PlanErrSettings, Message: err.Error()}
	}

	rules, err := s.rules.List(ctx)
	if err != nil {
		rules = nil
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		tags = nil
	}

	pool, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Recipe, len(pool))
	for _, r := range pool {
		byID[r.ID] = r
	}

	window := calendar.WindowDates(active.StartDate, daysBetween(active.StartDate, active.EndDate)+1)
	constraints := planner.ResolveConstraints(window, rules, tags, settings.Fortnightly)
	byDate := make(map[string]planner.DayConstraint, len(constraints))
	for _, c := range constraints {
		byDate[calendar.FormatDate(c.Date.Date)] = c
	}

	resp := &app.GenerateResponse{Plan: active, TotalDays: len(items)}
	for _, it := range items {
		c := byDate[calendar.FormatDate(it.Date)]
		day := app.DayAssignment{
			Date:    it.Date,
			Weekday: calendar.WeekdayNumber(it.Date),
			TagName: c.TagName,
			ItemID:  it.ID,
		}
		if c.RuleID != nil {
			resp.RulesApplied++
		}
		if it.RecipeID != nil {
			if r, ok := byID[*it.RecipeID]; ok {
				day.Recipe = &r
				resp.AssignedDays++
			}
		}
		resp.Days = append(resp.Days, day)
	}
	return resp, nil
}

func (s *planService) List(ctx context.Context) ([]*domain.MealPlan, error) {
	return s.plans.List(ctx)
}

// EnsureActivePlan generates a plan when nothing covers now, honoring
// the auto-create preference. A future-only plan counts as covered.
func (s *planService) EnsureActivePlan(ctx context.Context, now time.Time) (*app.EnsureResult, error) {
	status, err := s.Status(ctx, app.StatusRequest{Now: &now})
	if err != nil {
		return nil, err
	}
	if status.State == domain.PlanStateActive || status.State == domain.PlanStateFutureOnly {
		return &app.EnsureResult{Status: status}, nil
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, &app.PlanError{Code: app.PlanErrSettings, Message: err.Error()}
	}
	if !settings.AutoCreatePlans || !status.HasRecipes {
		return &app.EnsureResult{Status: status}, nil
	}

	gen, err := s.Generate(ctx, app.GenerateRequest{Trigger: domain.TriggerAuto, Now: &now})
	if err != nil {
		return nil, err
	}
	return &app.EnsureResult{Created: true, Generate: gen}, nil
}

func (s *planService) loadSettings(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.settings.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// constraintFor resolves the rule constraint for one date of a stored
// plan, reusing the same resolution the generator ran. Like Generate,
// unreadable rules or tags degrade to an unconstrained day.
func (s *planService) constraintFor(ctx context.Context, plan *domain.MealPlan, date time.Time, settings *domain.Settings) (planner.DayConstraint, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		rules = nil
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		tags = nil
	}

	window := calendar.WindowDates(plan.StartDate, daysBetween(plan.StartDate, plan.EndDate)+1)
	constraints := planner.ResolveConstraints(window, rules, tags, settings.Fortnightly)
	for _, c := range constraints {
		if c.Date.Date.Equal(date) {
			return c, nil
		}
	}
	return planner.DayConstraint{}, &app.PlanError{
		Code:    app.PlanErrDateNotInPlan,
		Message: fmt.Sprintf("%s is outside the active plan (%s)", calendar.FormatDate(date), plan.Name),
		PlanID:  plan.ID,
	}
}

// daysBetween counts whole days from a to b; both must be
// midnight-normalized dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func createAction(hasRecipes bool) domain.PlanAction {
	if hasRecipes {
		return domain.ActionCreateNew
	}
	return domain.ActionSuggestCreate
}
