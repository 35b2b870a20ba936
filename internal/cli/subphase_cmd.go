package cli

import (
	"context"
	"fmt"

	"github.com/avereen/plancast/internal/cli/formatter"
	"github.com/avereen/plancast/internal/domain"
	"github.com/spf13/cobra"
)

func newSubphaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subphase",
		Short: "Manage subphases within a project",
	}

	cmd.AddCommand(
		newSubphaseAddCmd(app),
		newSubphaseRenameCmd(app),
		newSubphaseSetDatesCmd(app),
		newSubphaseRemoveCmd(app),
	)

	return cmd
}

func newSubphaseAddCmd(app *App) *cobra.Command {
	var name, start, end, date, phaseRef, parentRef string
	var milestone, interactive bool

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a subphase under a phase or another subphase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if (phaseRef == "") == (parentRef == "") {
				return fmt.Errorf("exactly one of --phase or --parent is required")
			}

			if interactive {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("interactive mode needs a terminal")
				}
				if err := nodeForm("Subphase", &name, &start, &end, &milestone).Run(); err != nil {
					return err
				}
				if milestone {
					date = start
				}
			}
			if name == "" {
				return fmt.Errorf("subphase name is required")
			}

			startDate, endDate, err := nodeDates(start, end, date, milestone)
			if err != nil {
				return err
			}

			sub := &domain.Subphase{
				ProjectID:   projectID,
				Name:        name,
				StartDate:   startDate,
				EndDate:     endDate,
				IsMilestone: milestone,
			}
			if phaseRef != "" {
				phaseID, err := resolvePhaseID(ctx, app, projectID, phaseRef)
				if err != nil {
					return err
				}
				sub.ParentPhaseID = &phaseID
			} else {
				parentID, err := resolveSubphaseID(ctx, app, projectID, parentRef)
				if err != nil {
					return err
				}
				sub.ParentSubphaseID = &parentID
			}

			res, err := app.Subphases.Create(ctx, sub)
			if err != nil {
				return err
			}

			fmt.Printf("Added subphase %s\n", sub.Name)
			if note := cascadeNote(res); note != "" {
				fmt.Println(formatter.Dim(note))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Subphase name")
	cmd.Flags().StringVar(&phaseRef, "phase", "", "Parent phase (ID, prefix, or name)")
	cmd.Flags().StringVar(&parentRef, "parent", "", "Parent subphase (ID, prefix, or name)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&date, "date", "", "Milestone date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&milestone, "milestone", false, "Create as a single-day milestone")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Collect fields interactively")

	return cmd
}

func newSubphaseRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename PROJECT SUBPHASE",
		Short: "Rename a subphase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			subphaseID, err := resolveSubphaseID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}
			if err := app.Subphases.Rename(ctx, subphaseID, name); err != nil {
				return err
			}
			fmt.Printf("Renamed subphase to %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New subphase name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSubphaseSetDatesCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "set-dates PROJECT SUBPHASE",
		Short: "Set a subphase's date range and reconcile its ancestors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			subphaseID, err := resolveSubphaseID(ctx, app, projectID, args[1])
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

			res, err := app.Subphases.SetDates(ctx, subphaseID, s, e)
			if err != nil {
				return err
			}

			fmt.Printf("Set subphase dates to %s → %s\n", start, end)
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

func newSubphaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT SUBPHASE",
		Short: "Remove a subphase and its children",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			subphaseID, err := resolveSubphaseID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			res, err := app.Subphases.Delete(ctx, subphaseID)
			if err != nil {
				return err
			}

			fmt.Printf("Removed subphase %s\n", subphaseID)
			if note := cascadeNote(res); note != "" {
				fmt.Println(formatter.Dim(note))
			}
			return nil
		},
	}
}
