package domain

import "fmt"

// Settings is the single-row user preference record driving plan
// generation. A missing row is materialized with defaults on first read.
type Settings struct {
	ID              string
	PlannerDuration int // plan window length in days: 7 or 14
	WeekStartDay    int // 1=Monday .. 7=Sunday
	AutoCreatePlans bool
	Fortnightly     bool // enables week-1/week-2 day rule matching
}

// DefaultSettings returns the settings used when no row exists yet.
func DefaultSettings() *Settings {
	return &Settings{
		ID:              "default",
		PlannerDuration: 7,
		WeekStartDay:    1,
		AutoCreatePlans: false,
		Fortnightly:     false,
	}
}

// Validate checks duration and week start ranges.
func (s *Settings) Validate() error {
	if s.PlannerDuration != 7 && s.PlannerDuration != 14 {
		return fmt.Errorf("planner duration %d not supported (7 or 14)", s.PlannerDuration)
	}
	if s.WeekStartDay < 1 || s.WeekStartDay > 7 {
		return fmt.Errorf("week start day %d out of range (1=Monday .. 7=Sunday)", s.WeekStartDay)
	}
	return nil
}
