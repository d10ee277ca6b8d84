package cli

import (
	"context"
	"fmt"

	"github.com/larderhq/larder/internal/cli/formatter"
	"github.com/larderhq/larder/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change planner settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Settings.Get(context.Background())
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Settings"))
			fmt.Printf("  Plan length:  %d days\n", s.PlannerDuration)
			fmt.Printf("  Week starts:  %s\n", domain.WeekdayNames[s.WeekStartDay])
			fmt.Printf("  Auto-create:  %s\n", onOff(s.AutoCreatePlans))
			fmt.Printf("  Fortnightly:  %s\n", onOff(s.Fortnightly))
			return nil
		},
	}
}

func onOff(b bool) string {
	if b {
		return formatter.StyleGreen.Render("on")
	}
	return formatter.Dim("off")
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var duration int
	var weekStart string
	var autoCreate, fortnightly bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("days") {
				s.PlannerDuration = duration
			}
			if cmd.Flags().Changed("week-start") {
				day, err := parseWeekday(weekStart)
				if err != nil {
					return err
				}
				s.WeekStartDay = day
			}
			if cmd.Flags().Changed("auto-create") {
				s.AutoCreatePlans = autoCreate
			}
			if cmd.Flags().Changed("fortnightly") {
				s.Fortnightly = fortnightly
			}

			if err := app.Settings.Update(ctx, s); err != nil {
				return err
			}
			fmt.Println("Settings updated")
			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "days", 7, "Plan window length (7 or 14)")
	cmd.Flags().StringVar(&weekStart, "week-start", "monday", "First day of the plan week")
	cmd.Flags().BoolVar(&autoCreate, "auto-create", false, "Generate a plan automatically when none covers today")
	cmd.Flags().BoolVar(&fortnightly, "fortnightly", false, "Match week-1/week-2 rules in 14-day plans")

	return cmd
}
