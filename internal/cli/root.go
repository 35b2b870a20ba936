package cli

import (
	"strings"

	"github.com/avereen/plancast/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Phases    service.PhaseService
	Subphases service.SubphaseService
	Tree      service.TreeService

	// IsInteractive reports whether stdin is a terminal; interactive
	// commands refuse to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "plancast" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "plancast",
		Short: "Hierarchical project planner with date reconciliation",
		Long: "Plancast keeps project, phase and subphase dates consistent:\n" +
			"inserting or extending a node widens its ancestors, deleting or\n" +
			"narrowing one pulls them back in.",
	}

	// Accept set_dates style flags too; flag names are normalized to dashes.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newProjectCmd(app),
		newPhaseCmd(app),
		newSubphaseCmd(app),
		newTreeCmd(app),
		newBrowseCmd(app),
	)

	return root
}
