package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// PlanDate is one slot of a plan window: a calendar date with its ISO
// weekday number and which week of the window it falls in.
type PlanDate struct {
	Date      time.Time
	Weekday   int // 1=Monday .. 7=Sunday
	WeekIndex int // 1 for days 0-6 from the anchor, 2 for days 7-13
}

// ParseDate parses a strict YYYY-MM-DD string into a midnight-UTC date.
// All date math in this package works on calendar components, never on
// epoch offsets, so a parsed date can never roll into an adjacent day
// under any process time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Normalize strips the time-of-day and zone from t, keeping only its
// calendar components as a midnight-UTC date.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekdayNumber returns the ISO weekday number for a date: 1=Monday
// through 7=Sunday. Go's time package numbers Sunday as 0; the remap
// keeps rule matching on the 1..7 convention the rule store uses.
func WeekdayNumber(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekAnchor returns the most recent occurrence of weekStartDay
// (1=Monday .. 7=Sunday) on or before now. The result is the anchor
// date a generated plan window starts from.
func WeekAnchor(now time.Time, weekStartDay int) time.Time {
	today := Normalize(now)
	back := (WeekdayNumber(today) - weekStartDay + 7) % 7
	return today.AddDate(0, 0, -back)
}

// WindowDates produces days consecutive PlanDates starting at anchor.
// Month and year boundaries roll over through calendar arithmetic.
func WindowDates(anchor time.Time, days int) []PlanDate {
	start := Normalize(anchor)
	window := make([]PlanDate, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		window = append(window, PlanDate{
			Date:      d,
			Weekday:   WeekdayNumber(d),
			WeekIndex: i/7 + 1,
		})
	}
	return window
}

// FormatDateRange renders a window label such as "Oct 27 - Nov 2".
// The year is omitted on both sides, even when the range crosses a year
// boundary; that matches the historical display format.
func FormatDateRange(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", formatShort(start), formatShort(end))
}

// FormatItemDate renders a single plan day, e.g. "Monday, Oct 27".
func FormatItemDate(t time.Time) string {
	return fmt.Sprintf("%s, %s", t.Weekday().String(), formatShort(t))
}

func formatShort(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month().String()[:3], t.Day())
}
