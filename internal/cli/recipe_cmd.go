package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/larderhq/larder/internal/cli/formatter"
	"github.com/larderhq/larder/internal/domain"
	"github.com/spf13/cobra"
)

func newRecipeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage the recipe pool",
	}

	cmd.AddCommand(
		newRecipeAddCmd(app),
		newRecipeListCmd(app),
		newRecipeShowCmd(app),
		newRecipeEditCmd(app),
		newRecipeTagCmd(app),
		newRecipeRemoveCmd(app),
	)

	return cmd
}

// resolveRecipe accepts a numeric ID or an exact name.
func resolveRecipe(ctx context.Context, app *App, input string) (*domain.Recipe, error) {
	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		return app.Recipes.GetByID(ctx, id)
	}
	recipes, err := app.Recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if strings.EqualFold(recipes[i].Name, input) {
			return &recipes[i], nil
		}
	}
	return nil, fmt.Errorf("recipe not found: %q", input)
}

func newRecipeAddCmd(app *App) *cobra.Command {
	var name, url, description, tags string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			// No --name in a terminal drops into the form.
			if !cmd.Flags().Changed("name") {
				if !app.Interactive {
					return fmt.Errorf("--name is required")
				}
				if err := recipeForm(&name, &url, &description, &tags).Run(); err != nil {
					return err
				}
			}

			r := &domain.Recipe{Name: name, URL: url, Description: description}
			if err := app.Recipes.Create(context.Background(), r, splitTags(tags)); err != nil {
				return err
			}

			fmt.Printf("Added recipe %s (#%d)\n", r.Name, r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Recipe name")
	cmd.Flags().StringVar(&url, "url", "", "Source URL")
	cmd.Flags().StringVar(&description, "desc", "", "Short description")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags (created if missing)")

	return cmd
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newRecipeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			recipes, err := app.Recipes.List(ctx)
			if err != nil {
				return err
			}
			if len(recipes) == 0 {
				fmt.Println(formatter.Dim("No recipes yet. Add one with: larder recipe add"))
				return nil
			}

			tagNames, err := tagNameIndex(ctx, app)
			if err != nil {
				return err
			}

			headers := []string{"ID", "Name", "Tags"}
			rows := make([][]string, 0, len(recipes))
			for _, r := range recipes {
				rows = append(rows, []string{
					strconv.FormatInt(r.ID, 10),
					r.Name,
					formatter.StylePurple.Render(joinTagNames(r.TagIDs, tagNames)),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func tagNameIndex(ctx context.Context, app *App) (map[int64]string, error) {
	tags, err := app.Tags.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(tags))
	for _, t := range tags {
		names[t.ID] = t.Name
	}
	return names, nil
}

func joinTagNames(ids []int64, names map[int64]string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok {
			out = append(out, n)
		}
	}
	return strings.Join(out, ", ")
}

func newRecipeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			r, err := resolveRecipe(ctx, app, args[0])
			if err != nil {
				return err
			}
			tagNames, err := tagNameIndex(ctx, app)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(r.Name))
			if r.Description != "" {
				fmt.Printf("  %s\n", r.Description)
			}
			if r.URL != "" {
				fmt.Printf("  URL:  %s\n", formatter.StyleBlue.Render(r.URL))
			}
			if len(r.TagIDs) > 0 {
				fmt.Printf("  Tags: %s\n", formatter.StylePurple.Render(joinTagNames(r.TagIDs, tagNames)))
			}
			return nil
		},
	}
}

func newRecipeEditCmd(app *App) *cobra.Command {
	var name, url, description string

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Edit a recipe's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			r, err := resolveRecipe(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				r.Name = name
			}
			if cmd.Flags().Changed("url") {
				r.URL = url
			}
			if cmd.Flags().Changed("desc") {
				r.Description = description
			}

			if err := app.Recipes.Update(ctx, r); err != nil {
				return err
			}
			fmt.Printf("Updated recipe %s\n", r.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&url, "url", "", "New source URL")
	cmd.Flags().StringVar(&description, "desc", "", "New description")

	return cmd
}

func newRecipeTagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id|name> <tags>",
		Short: "Replace a recipe's tags (comma-separated, created if missing)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			r, err := resolveRecipe(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Recipes.SetTagsByName(ctx, r.ID, splitTags(args[1])); err != nil {
				return err
			}
			fmt.Printf("Tagged %s: %s\n", r.Name, args[1])
			return nil
		},
	}
}

func newRecipeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id|name>",
		Short: "Delete a recipe (planned days using it become unassigned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			r, err := resolveRecipe(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Recipes.Delete(ctx, r.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted recipe %s\n", r.Name)
			return nil
		},
	}
}
