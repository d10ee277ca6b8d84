package domain

import (
	"fmt"
	"time"
)

// DayRule maps a weekday (and, in fortnightly mode, which week of the
// fortnight) to a required tag. At most one rule exists per
// (week index, weekday) pair; a day has zero or one active constraint.
type DayRule struct {
	ID        int64
	DayOfWeek int  // 1=Monday .. 7=Sunday
	WeekIndex *int // nil for weekly rules, 1 or 2 for fortnightly
	TagID     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the weekday and week index ranges.
func (r *DayRule) Validate() error {
	if r.DayOfWeek < 1 || r.DayOfWeek > 7 {
		return fmt.Errorf("day of week %d out of range (1=Monday .. 7=Sunday)", r.DayOfWeek)
	}
	if r.WeekIndex != nil && (*r.WeekIndex < 1 || *r.WeekIndex > 2) {
		return fmt.Errorf("week index %d out of range (1 or 2)", *r.WeekIndex)
	}
	return nil
}

// Matches reports whether the rule applies to the given weekday and week
// index. Weekly rules (nil WeekIndex) match any week.
func (r *DayRule) Matches(weekday, weekIndex int) bool {
	if r.DayOfWeek != weekday {
		return false
	}
	if r.WeekIndex == nil {
		return true
	}
	return *r.WeekIndex == weekIndex
}
