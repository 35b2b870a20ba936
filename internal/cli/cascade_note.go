package cli

import (
	"fmt"
	"strings"

	"github.com/avereen/plancast/internal/cascade"
)

// cascadeNote summarizes which ancestors a mutation re-ranged, for
// printing after the primary confirmation line. Empty when nothing moved.
func cascadeNote(res cascade.Result) string {
	var parts []string
	if res.SubphasesUpdated == 1 {
		parts = append(parts, "1 subphase")
	} else if res.SubphasesUpdated > 1 {
		parts = append(parts, fmt.Sprintf("%d subphases", res.SubphasesUpdated))
	}
	if res.PhaseUpdated {
		parts = append(parts, "phase")
	}
	if res.ProjectUpdated {
		parts = append(parts, "project")
	}
	if len(parts) == 0 {
		return ""
	}
	return "Rescheduled: " + strings.Join(parts, ", ")
}
