package app

import (
	"time"

	"github.com/larderhq/larder/internal/domain"
)

type StatusRequest struct {
	Now *time.Time
}

// StatusResponse classifies the plan store relative to today and names
// the follow-up the caller should take.
type StatusResponse struct {
	State  domain.PlanState
	Action domain.PlanAction
	// Plan is the plan the state refers to: the active plan when one
	// covers today, the most recent plan when expired, nil when none
	// exist.
	Plan          *domain.MealPlan
	DaysRemaining int
	// HasRecipes reports whether the pool could feed a new plan; the
	// suggested action downgrades to a suggestion when it cannot.
	HasRecipes bool
}

// EnsureResult reports what EnsureActivePlan did.
type EnsureResult struct {
	Created bool
	// Generate is set when a plan was created, Status when the existing
	// plan was kept.
	Generate *GenerateResponse
	Status   *StatusResponse
}
