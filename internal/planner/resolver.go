package planner

import (
	"sort"

	"github.com/larderhq/larder/internal/calendar"
	"github.com/larderhq/larder/internal/domain"
)

// DayConstraint is a plan-window date together with the tag constraint
// resolved from the day rules. An empty TagIDs set means the day is
// unrestricted and any recipe is compatible.
type DayConstraint struct {
	Date    calendar.PlanDate
	RuleID  *int64
	TagIDs  []int64
	TagName string
}

// ResolveConstraints maps each window date to at most one day rule.
// In fortnightly mode a rule's week index participates in matching;
// otherwise week indexes are ignored and every rule is weekly.
//
// At most one rule should exist per (week index, weekday). If the store
// ever holds more than one match for a date, the lowest rule ID wins
// deterministically; constraints are never merged. Resolution is pure:
// the same window and rules always produce the same output.
func ResolveConstraints(window []calendar.PlanDate, rules []domain.DayRule, tags []domain.Tag, fortnightly bool) []DayConstraint {
	tagNames := make(map[int64]string, len(tags))
	for _, t := range tags {
		tagNames[t.ID] = t.Name
	}

	// Stable rule order so duplicate matches tie-break on lowest ID.
	sorted := make([]domain.DayRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	constraints := make([]DayConstraint, 0, len(window))
	for _, pd := range window {
		dc := DayConstraint{Date: pd}
		for i := range sorted {
			r := sorted[i]
			if !matches(&r, pd, fortnightly) {
				continue
			}
			id := r.ID
			dc.RuleID = &id
			dc.TagIDs = []int64{r.TagID}
			dc.TagName = tagNames[r.TagID]
			break
		}
		constraints = append(constraints, dc)
	}
	return constraints
}

func matches(r *domain.DayRule, pd calendar.PlanDate, fortnightly bool) bool {
	if !fortnightly {
		return r.DayOfWeek == pd.Weekday
	}
	return r.Matches(pd.Weekday, pd.WeekIndex)
}
