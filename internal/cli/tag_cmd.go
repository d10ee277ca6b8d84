package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/larderhq/larder/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage recipe tags",
	}

	cmd.AddCommand(
		newTagAddCmd(app),
		newTagListCmd(app),
		newTagRemoveCmd(app),
	)

	return cmd
}

func newTagAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tags.Create(context.Background(), args[0], description)
			if err != nil {
				return err
			}
			fmt.Printf("Created tag %s (#%d)\n", t.Name, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Tag description")

	return cmd
}

func newTagListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := app.Tags.List(context.Background())
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				fmt.Println(formatter.Dim("No tags yet. Add one with: larder tag add <name>"))
				return nil
			}

			headers := []string{"ID", "Name", "Description"}
			rows := make([][]string, 0, len(tags))
			for _, t := range tags {
				rows = append(rows, []string{strconv.FormatInt(t.ID, 10), t.Name, t.Description})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTagRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a tag (rules using it are removed, recipes keep their other tags)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := app.Tags.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Tags.Delete(ctx, t.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted tag %s\n", t.Name)
			return nil
		},
	}
}
