package domain

import "time"

// MealPlan is one generated plan window. Exactly one plan is active at a
// time; regeneration supersedes the previous active plan instead of
// mutating it.
type MealPlan struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the given calendar date falls inside the plan
// window (inclusive bounds). Both sides must be midnight-normalized dates.
func (p *MealPlan) Covers(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// MealPlanItem is one dated slot of a plan. RecipeID is nil when no
// compatible recipe existed for the day; that is a valid terminal state,
// not an error.
type MealPlanItem struct {
	ID         string
	MealPlanID string
	Date       time.Time
	RecipeID   *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
