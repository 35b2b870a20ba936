package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avereen/plancast/internal/cli/formatter"
	"github.com/avereen/plancast/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectRenameCmd(app),
		newProjectSetDatesCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func parseDate(label, value string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q: %w", label, value, err)
	}
	return d, nil
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{Name: name}

			if start != "" || end != "" {
				if start == "" || end == "" {
					return fmt.Errorf("--start and --end must be given together")
				}
				s, err := parseDate("start", start)
				if err != nil {
					return err
				}
				e, err := parseDate("end", end)
				if err != nil {
					return err
				}
				p.StartDate, p.EndDate = &s, &e
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details",
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

			fmt.Printf("%s\n", formatter.FormatProjectDetail(tree.Project(), len(tree.Phases()), tree.SubphaseCount()))
			return nil
		},
	}
}

func newProjectRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename ID",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Rename(ctx, projectID, name); err != nil {
				return err
			}
			fmt.Printf("Renamed project to %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectSetDatesCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "set-dates ID",
		Short: "Set a project's own date range",
		Long: "Sets the project's dates directly. Descendant phases and subphases\n" +
			"keep their dates; the next phase or subphase change reconciles the\n" +
			"project range again.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := parseDate("start", start)
			if err != nil {
				return err
			}
			e, err := parseDate("end", end)
			if err != nil {
				return err
			}
			if err := app.Projects.SetDates(ctx, projectID, s, e); err != nil {
				return err
			}
			fmt.Printf("Set project dates to %s → %s\n", start, end)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project and its whole hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", projectID)
			return nil
		},
	}
}
