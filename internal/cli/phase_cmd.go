package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avereen/plancast/internal/cli/formatter"
	"github.com/avereen/plancast/internal/domain"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage phases within a project",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseRenameCmd(app),
		newPhaseSetDatesCmd(app),
		newPhaseReorderCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

// nodeDates turns the add-command flags into the optional date pair. A
// milestone collapses to a single day from --date.
func nodeDates(start, end, date string, milestone bool) (*time.Time, *time.Time, error) {
	if milestone {
		if date == "" {
			return nil, nil, nil
		}
		d, err := parseDate("milestone", date)
		if err != nil {
			return nil, nil, err
		}
		return &d, &d, nil
	}
	if start == "" && end == "" {
		return nil, nil, nil
	}
	if start == "" || end == "" {
		return nil, nil, fmt.Errorf("--start and --end must be given together")
	}
	s, err := parseDate("start", start)
	if err != nil {
		return nil, nil, err
	}
	e, err := parseDate("end", end)
	if err != nil {
		return nil, nil, err
	}
	return &s, &e, nil
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var name, start, end, date string
	var milestone, interactive bool

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a phase to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if interactive {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("interactive mode needs a terminal")
				}
				if err := nodeForm("Phase", &name, &start, &end, &milestone).Run(); err != nil {
					return err
				}
				if milestone {
					date = start
				}
			}
			if name == "" {
				return fmt.Errorf("phase name is required")
			}

			startDate, endDate, err := nodeDates(start, end, date, milestone)
			if err != nil {
				return err
			}

			ph := &domain.Phase{
				ProjectID:   projectID,
				Name:        name,
				StartDate:   startDate,
				EndDate:     endDate,
				IsMilestone: milestone,
			}

			res, err := app.Phases.Create(ctx, ph)
			if err != nil {
				return err
			}

			fmt.Printf("Added phase %s\n", ph.Name)
			if note := cascadeNote(res); note != "" {
				fmt.Println(formatter.Dim(note))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&date, "date", "", "Milestone date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&milestone, "milestone", false, "Create as a single-day milestone")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Collect fields interactively")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's phases in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(phases) == 0 {
				fmt.Println("No phases found.")
				return nil
			}

			headers := []string{"ID", "NAME", "DATES", ""}
			rows := make([][]string, 0, len(phases))
			for _, ph := range phases {
				marker := ""
				if ph.IsMilestone {
					marker = formatter.StylePurple.Render("◆")
				}
				rows = append(rows, []string{
					formatter.TruncID(ph.ID),
					formatter.Bold(ph.Name),
					formatter.DateSpan(ph.StartDate, ph.EndDate),
					marker,
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newPhaseRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename PROJECT PHASE",
		Short: "Rename a phase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}
			if err := app.Phases.Rename(ctx, phaseID, name); err != nil {
				return err
			}
			fmt.Printf("Renamed phase to %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New phase name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPhaseSetDatesCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "set-dates PROJECT PHASE",
		Short: "Set a phase's date range and reconcile the project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, projectID, args[1])
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

			res, err := app.Phases.SetDates(ctx, phaseID, s, e)
			if err != nil {
				return err
			}

			fmt.Printf("Set phase dates to %s → %s\n", start, end)
			if note := cascadeNote(res); note != "" {
				fmt.Println(formatter.Dim(note))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPhaseReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder PROJECT PHASE...",
		Short: "Reorder a project's phases",
		Long:  "Takes every phase of the project in the desired order.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			orderedIDs := make([]string, 0, len(args)-1)
			for _, ref := range args[1:] {
				id, err := resolvePhaseID(ctx, app, projectID, ref)
				if err != nil {
					return err
				}
				orderedIDs = append(orderedIDs, id)
			}

			if err := app.Phases.Reorder(ctx, projectID, orderedIDs); err != nil {
				return err
			}
			fmt.Printf("Reordered %d phases\n", len(orderedIDs))
			return nil
		},
	}
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT PHASE",
		Short: "Remove a phase and its subphases",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			res, err := app.Phases.Delete(ctx, phaseID)
			if err != nil {
				return err
			}

			fmt.Printf("Removed phase %s\n", phaseID)
			if note := cascadeNote(res); note != "" {
				fmt.Println(formatter.Dim(note))
			}
			return nil
		},
	}
}
