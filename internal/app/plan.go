package app

import (
	"time"

	"github.com/larderhq/larder/internal/domain"
)

// GenerateRequest asks for a fresh plan window. Now defaults to the wall
// clock; StartDate overrides the computed week anchor when set.
type GenerateRequest struct {
	Trigger   domain.PlanTrigger
	Now       *time.Time
	StartDate *time.Time
}

func NewGenerateRequest(trigger domain.PlanTrigger) GenerateRequest {
	return GenerateRequest{Trigger: trigger}
}

// DayAssignment is one resolved day of a generated or loaded plan.
type DayAssignment struct {
	Date    time.Time
	Weekday int // 1=Monday .. 7=Sunday
	// TagName names the tag constraining this day, empty when the day is
	// unconstrained.
	TagName string
	// Recipe is nil when no compatible recipe existed for the day.
	Recipe *domain.Recipe
	ItemID string
}

type GenerateResponse struct {
	Plan         *domain.MealPlan
	Days         []DayAssignment
	AssignedDays int
	TotalDays    int
	RulesApplied int
	Warnings     []string
}

// SwapRequest re-rolls a single day of the active plan.
type SwapRequest struct {
	Date time.Time
}

type SwapResponse struct {
	Date     time.Time
	Previous *domain.Recipe
	Picked   *domain.Recipe
	// Repeated is true when the only compatible recipe was the one
	// already assigned, so the swap kept it.
	Repeated bool
}

type PlanErrorCode string

const (
	PlanErrSettings      PlanErrorCode = "SETTINGS_UNAVAILABLE"
	PlanErrItemsPersist  PlanErrorCode = "ITEMS_PERSIST_FAILED"
	PlanErrNoActivePlan  PlanErrorCode = "NO_ACTIVE_PLAN"
	PlanErrDateNotInPlan PlanErrorCode = "DATE_NOT_IN_PLAN"
	PlanErrEmptyPool     PlanErrorCode = "EMPTY_RECIPE_POOL"
	PlanErrInternal      PlanErrorCode = "INTERNAL_ERROR"
)

// PlanError carries a stable code alongside the message. PlanID is set
// when a plan row survived a failed operation and can be retried or
// cleaned up.
type PlanError struct {
	Code    PlanErrorCode
	Message string
	PlanID  string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
