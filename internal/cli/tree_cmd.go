package cli

import (
	"context"
	"fmt"

	"github.com/avereen/plancast/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree PROJECT",
		Short: "Show a project's phase and subphase hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tree, err := app.Tree.Fetch(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPlanTree(tree))
			return nil
		},
	}
}
