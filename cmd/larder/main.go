package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/larderhq/larder/internal/cli"
	"github.com/larderhq/larder/internal/db"
	"github.com/larderhq/larder/internal/planner"
	"github.com/larderhq/larder/internal/repository"
	"github.com/larderhq/larder/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.larder/larder.db
	dbPath := os.Getenv("LARDER_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".larder", "larder.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	tagRepo := repository.NewSQLiteTagRepo(database)
	recipeRepo := repository.NewSQLiteRecipeRepo(database)
	ruleRepo := repository.NewSQLiteDayRuleRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	planRepo := repository.NewSQLiteMealPlanRepo(database)
	itemRepo := repository.NewSQLiteMealPlanItemRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	selector := planner.NewSelector(rand.New(rand.NewSource(time.Now().UnixNano())))

	planSvc := service.NewPlanService(
		planRepo, itemRepo, recipeRepo, tagRepo, ruleRepo, settingsRepo, selector, uow,
	)

	app := &cli.App{
		Tags:     service.NewTagService(tagRepo),
		Recipes:  service.NewRecipeService(recipeRepo, tagRepo, uow),
		Rules:    service.NewRuleService(ruleRepo, tagRepo),
		Settings: service.NewSettingsService(settingsRepo),
		Plans:    planSvc,

		Interactive: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	// Auto-create fires before the command runs, so a stale plan is
	// replaced transparently when the preference is on.
	if result, err := planSvc.EnsureActivePlan(context.Background(), time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not auto-create a plan: %v\n", err)
	} else if result.Created {
		fmt.Fprintln(os.Stderr, "Auto-created a plan for the current week.")
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
