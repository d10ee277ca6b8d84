package formatter

import (
	"fmt"
	"strings"

	"github.com/larderhq/larder/internal/app"
	"github.com/larderhq/larder/internal/calendar"
)

// RenderPlan renders a generated or loaded plan as a day table followed
// by an assignment summary.
func RenderPlan(resp *app.GenerateResponse) string {
	var b strings.Builder

	b.WriteString(Header(resp.Plan.Name))
	b.WriteString("\n")

	headers := []string{"Day", "Recipe", "Rule"}
	rows := make([][]string, 0, len(resp.Days))
	for _, day := range resp.Days {
		recipe := Dim("(unassigned)")
		if day.Recipe != nil {
			recipe = day.Recipe.Name
		}
		rule := ""
		if day.TagName != "" {
			rule = StylePurple.Render(day.TagName)
		}
		rows = append(rows, []string{calendar.FormatItemDate(day.Date), recipe, rule})
	}
	b.WriteString(RenderTable(headers, rows))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Assigned %d/%d days", resp.AssignedDays, resp.TotalDays))
	if resp.RulesApplied > 0 {
		b.WriteString(Dim(fmt.Sprintf("  (%d ruled)", resp.RulesApplied)))
	}
	b.WriteString("\n")
	return b.String()
}
