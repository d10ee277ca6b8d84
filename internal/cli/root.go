package cli

import (
	"github.com/larderhq/larder/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tags     service.TagService
	Recipes  service.RecipeService
	Rules    service.RuleService
	Settings service.SettingsService
	Plans    service.PlanService

	// Interactive is true when stdout is a terminal, enabling forms and
	// the plan viewer.
	Interactive bool
}

// NewRootCmd creates the top-level "larder" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "larder",
		Short: "Weekly meal planner with per-day tag rules",
	}

	root.AddCommand(
		newRecipeCmd(app),
		newTagCmd(app),
		newRuleCmd(app),
		newSettingsCmd(app),
		newPlanCmd(app),
	)

	return root
}
