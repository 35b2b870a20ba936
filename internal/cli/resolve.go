package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/domain"
)

// resolveProjectID turns user input into a full project ID. Exact UUID
// matches win; otherwise a unique UUID prefix or a unique case-insensitive
// name match is accepted.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	if len(matches) == 0 {
		for _, p := range projects {
			if strings.EqualFold(p.Name, input) {
				matches = append(matches, p.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolvePhaseID matches a phase within one project by exact ID, unique ID
// prefix, or unique case-insensitive name.
func resolvePhaseID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("phase ID is required")
	}

	phases, err := app.Phases.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	return matchNode(input, "phase", func(yield func(id, name string)) {
		for _, ph := range phases {
			yield(ph.ID, ph.Name)
		}
	})
}

// resolveSubphaseID matches a subphase within one project the same way.
func resolveSubphaseID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("subphase ID is required")
	}

	tree, err := app.Tree.Fetch(ctx, projectID)
	if err != nil {
		return "", err
	}
	var subphases []*domain.Subphase
	for _, ph := range tree.Phases() {
		subphases = append(subphases, collectSubtree(tree, ph.ID)...)
	}
	return matchNode(input, "subphase", func(yield func(id, name string)) {
		for _, s := range subphases {
			yield(s.ID, s.Name)
		}
	})
}

// collectSubtree flattens a phase's subphase subtree depth first.
func collectSubtree(tree *cascade.ProjectTree, phaseID string) []*domain.Subphase {
	var out []*domain.Subphase
	var walk func(children []*domain.Subphase)
	walk = func(children []*domain.Subphase) {
		for _, s := range children {
			out = append(out, s)
			walk(tree.SubphaseChildren(s.ID))
		}
	}
	walk(tree.PhaseChildren(phaseID))
	return out
}

func matchNode(input, kind string, each func(yield func(id, name string))) (string, error) {
	var exact string
	var prefixes, names []string
	each(func(id, name string) {
		if id == input {
			exact = id
		}
		if strings.HasPrefix(id, input) {
			prefixes = append(prefixes, id)
		}
		if strings.EqualFold(name, input) {
			names = append(names, id)
		}
	})

	if exact != "" {
		return exact, nil
	}
	matches := prefixes
	if len(matches) == 0 {
		matches = names
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s reference %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}
