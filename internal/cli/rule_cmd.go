package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/larderhq/larder/internal/cli/formatter"
	"github.com/larderhq/larder/internal/domain"
	"github.com/spf13/cobra"
)

// parseWeekday accepts a weekday name ("monday", "mon") or number (1-7).
func parseWeekday(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for num, name := range domain.WeekdayNames {
		lower := strings.ToLower(name)
		if s == lower || s == lower[:3] {
			return num, nil
		}
	}
	if len(s) == 1 && s[0] >= '1' && s[0] <= '7' {
		return int(s[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid weekday %q (use monday..sunday or 1..7)", s)
}

func newRuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage per-day tag rules",
	}

	cmd.AddCommand(
		newRuleSetCmd(app),
		newRuleListCmd(app),
		newRuleClearCmd(app),
	)

	return cmd
}

func newRuleSetCmd(app *App) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "set <weekday> <tag>",
		Short: "Constrain a weekday to recipes carrying the tag",
		Long: `Constrain a weekday to recipes carrying the tag.

With --week 1 or --week 2 the rule only applies to that week of a
fortnightly plan (requires fortnightly mode in settings). Setting a
rule replaces whatever rule held the same slot.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseWeekday(args[0])
			if err != nil {
				return err
			}

			var weekIndex *int
			if cmd.Flags().Changed("week") {
				weekIndex = &week
			}

			rule, err := app.Rules.Set(context.Background(), day, weekIndex, args[1])
			if err != nil {
				return err
			}

			slot := domain.WeekdayNames[rule.DayOfWeek]
			if rule.WeekIndex != nil {
				slot = fmt.Sprintf("%s (week %d)", slot, *rule.WeekIndex)
			}
			fmt.Printf("Rule set: %s -> %s\n", slot, args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Restrict the rule to week 1 or 2 of a fortnightly plan")

	return cmd
}

func newRuleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List day rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := app.Rules.List(context.Background())
			if err != nil {
				return err
			}
			if len(rules) == 0 {
				fmt.Println(formatter.Dim("No rules yet. Add one with: larder rule set <weekday> <tag>"))
				return nil
			}

			headers := []string{"Day", "Week", "Tag"}
			rows := make([][]string, 0, len(rules))
			for _, r := range rules {
				week := formatter.Dim("every")
				if r.WeekIndex != nil {
					week = fmt.Sprintf("%d", *r.WeekIndex)
				}
				rows = append(rows, []string{
					domain.WeekdayNames[r.DayOfWeek],
					week,
					formatter.StylePurple.Render(r.TagName),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newRuleClearCmd(app *App) *cobra.Command {
	var week int
	var all bool

	cmd := &cobra.Command{
		Use:   "clear [weekday]",
		Short: "Remove a day rule, or all rules with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if all {
				if err := app.Rules.ClearAll(ctx); err != nil {
					return err
				}
				fmt.Println("Cleared all rules")
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("specify a weekday or --all")
			}

			day, err := parseWeekday(args[0])
			if err != nil {
				return err
			}
			var weekIndex *int
			if cmd.Flags().Changed("week") {
				weekIndex = &week
			}
			if err := app.Rules.Clear(ctx, weekIndex, day); err != nil {
				return err
			}
			fmt.Printf("Cleared rule for %s\n", domain.WeekdayNames[day])
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Week slot to clear (1 or 2)")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every rule")

	return cmd
}
