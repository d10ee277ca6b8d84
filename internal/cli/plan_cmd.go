package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/larderhq/larder/internal/app"
	"github.com/larderhq/larder/internal/calendar"
	"github.com/larderhq/larder/internal/cli/formatter"
	"github.com/larderhq/larder/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and inspect meal plans",
	}

	cmd.AddCommand(
		newPlanGenerateCmd(a),
		newPlanShowCmd(a),
		newPlanStatusCmd(a),
		newPlanSwapCmd(a),
		newPlanListCmd(a),
		newPlanViewCmd(a),
	)

	return cmd
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "  WARNING: %s\n", w)
	}
}

func newPlanGenerateCmd(a *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"recreate"},
		Short:   "Generate a plan for the current week (supersedes the active plan)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewGenerateRequest(domain.TriggerManual)
			if cmd.CalledAs() == "recreate" {
				req.Trigger = domain.TriggerRecreate
			}
			if start != "" {
				d, err := calendar.ParseDate(start)
				if err != nil {
					return err
				}
				req.StartDate = &d
			}

			resp, err := a.Plans.Generate(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Print(formatter.RenderPlan(resp))
			printWarnings(cmd, resp.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, defaults to the current week's start)")

	return cmd
}

func newPlanShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Plans.ViewActive(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderPlan(resp))
			return nil
		},
	}
}

func newPlanStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report where today falls relative to the stored plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.Plans.Status(context.Background(), app.StatusRequest{})
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Plan Status"))
			fmt.Printf("  State:  %s\n", formatter.StateIndicator(status.State))
			if status.Plan != nil {
				fmt.Printf("  Plan:   %s\n", status.Plan.Name)
			}
			if status.DaysRemaining > 0 {
				fmt.Printf("  Days:   %d remaining\n", status.DaysRemaining)
			}

			switch status.Action {
			case domain.ActionCreateNew:
				fmt.Println(formatter.Dim("  Run: larder plan generate"))
			case domain.ActionSuggestCreate:
				fmt.Println(formatter.Dim("  Add recipes first, then: larder plan generate"))
			}
			return nil
		},
	}
}

// resolveSwapDate accepts YYYY-MM-DD, "today", or a weekday name, which
// maps to that weekday's first occurrence in the active plan.
func resolveSwapDate(ctx context.Context, a *App, input string) (time.Time, error) {
	if input == "today" {
		return calendar.Normalize(time.Now()), nil
	}
	if d, err := calendar.ParseDate(input); err == nil {
		return d, nil
	}
	day, err := parseWeekday(input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, today, or a weekday)", input)
	}

	view, err := a.Plans.ViewActive(ctx)
	if err != nil {
		return time.Time{}, err
	}
	for _, d := range view.Days {
		if d.Weekday == day {
			return d.Date, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s does not occur in the active plan", domain.WeekdayNames[day])
}

func newPlanSwapCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <date>",
		Short: "Re-roll one day of the active plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			date, err := resolveSwapDate(ctx, a, args[0])
			if err != nil {
				return err
			}

			resp, err := a.Plans.Swap(ctx, app.SwapRequest{Date: date})
			if err != nil {
				return err
			}

			day := calendar.FormatItemDate(resp.Date)
			switch {
			case resp.Picked == nil:
				fmt.Printf("%s: no compatible recipe, day left unassigned\n", day)
			case resp.Repeated:
				fmt.Printf("%s: kept %s (only compatible recipe)\n", day, formatter.Bold(resp.Picked.Name))
			case resp.Previous != nil:
				fmt.Printf("%s: %s -> %s\n", day, formatter.Dim(resp.Previous.Name), formatter.Bold(resp.Picked.Name))
			default:
				fmt.Printf("%s: assigned %s\n", day, formatter.Bold(resp.Picked.Name))
			}
			return nil
		},
	}
}

func newPlanListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored plans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := a.Plans.List(context.Background())
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println(formatter.Dim("No plans yet. Run: larder plan generate"))
				return nil
			}

			headers := []string{"Plan", "Start", "End", "Status"}
			rows := make([][]string, 0, len(plans))
			for _, p := range plans {
				status := formatter.Dim("superseded")
				if p.IsActive {
					status = formatter.StyleGreen.Render("active")
				}
				rows = append(rows, []string{
					p.Name,
					calendar.FormatDate(p.StartDate),
					calendar.FormatDate(p.EndDate),
					status,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newPlanViewCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse the active plan interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Interactive {
				return fmt.Errorf("plan view needs a terminal; use 'larder plan show' instead")
			}

			resp, err := a.Plans.ViewActive(context.Background())
			if err != nil {
				return err
			}

			p := tea.NewProgram(newPlanViewModel(a, resp))
			_, err = p.Run()
			return err
		},
	}
}
