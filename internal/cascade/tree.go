package cascade

import (
	"sort"

	"github.com/avereen/plancast/internal/domain"
)

// ProjectTree is an in-memory snapshot of one project's plan hierarchy,
// stored as a flat arena: nodes keyed by id, each holding its parent id
// plus an ordered list of child ids. Lookups and ancestor resolution are
// O(1) per step instead of repeated tree scans.
//
// The tree is a working copy. The engine updates node ranges in place as
// it cascades so that each level reconciles against already-reconciled
// children; callers re-fetch from storage for authoritative state.
type ProjectTree struct {
	project   *domain.Project
	phases    map[string]*domain.Phase
	subphases map[string]*domain.Subphase

	phaseIDs         []string            // ordered by OrderIndex
	phaseChildren    map[string][]string // phase id -> direct subphase ids
	subphaseChildren map[string][]string // subphase id -> child subphase ids
}

// NewProjectTree indexes a project with its phases and subphases.
// Children are ordered by OrderIndex; ties keep input order.
func NewProjectTree(project *domain.Project, phases []*domain.Phase, subphases []*domain.Subphase) *ProjectTree {
	t := &ProjectTree{
		project:          project,
		phases:           make(map[string]*domain.Phase, len(phases)),
		subphases:        make(map[string]*domain.Subphase, len(subphases)),
		phaseChildren:    make(map[string][]string),
		subphaseChildren: make(map[string][]string),
	}

	ordered := make([]*domain.Phase, len(phases))
	copy(ordered, phases)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})
	for _, ph := range ordered {
		t.phases[ph.ID] = ph
		t.phaseIDs = append(t.phaseIDs, ph.ID)
	}

	bySub := make([]*domain.Subphase, len(subphases))
	copy(bySub, subphases)
	sort.SliceStable(bySub, func(i, j int) bool {
		return bySub[i].OrderIndex < bySub[j].OrderIndex
	})
	for _, s := range bySub {
		t.subphases[s.ID] = s
	}
	for _, s := range bySub {
		switch {
		case s.ParentPhaseID != nil:
			t.phaseChildren[*s.ParentPhaseID] = append(t.phaseChildren[*s.ParentPhaseID], s.ID)
		case s.ParentSubphaseID != nil:
			t.subphaseChildren[*s.ParentSubphaseID] = append(t.subphaseChildren[*s.ParentSubphaseID], s.ID)
		}
	}

	return t
}

// Project returns the snapshot's root.
func (t *ProjectTree) Project() *domain.Project {
	return t.project
}

// Phase looks up a phase by id.
func (t *ProjectTree) Phase(id string) (*domain.Phase, bool) {
	ph, ok := t.phases[id]
	return ph, ok
}

// Subphase looks up a subphase by id.
func (t *ProjectTree) Subphase(id string) (*domain.Subphase, bool) {
	s, ok := t.subphases[id]
	return s, ok
}

// Phases returns the project's phases in order.
func (t *ProjectTree) Phases() []*domain.Phase {
	out := make([]*domain.Phase, 0, len(t.phaseIDs))
	for _, id := range t.phaseIDs {
		out = append(out, t.phases[id])
	}
	return out
}

// PhaseChildren returns a phase's direct subphases in order.
func (t *ProjectTree) PhaseChildren(phaseID string) []*domain.Subphase {
	return t.resolveIDs(t.phaseChildren[phaseID])
}

// SubphaseChildren returns a subphase's direct children in order.
func (t *ProjectTree) SubphaseChildren(subphaseID string) []*domain.Subphase {
	return t.resolveIDs(t.subphaseChildren[subphaseID])
}

// SubphaseCount reports how many subphases the snapshot holds. Traversals
// use it as an iteration bound.
func (t *ProjectTree) SubphaseCount() int {
	return len(t.subphases)
}

// OwningPhase walks a subphase's parent chain to the phase it ultimately
// belongs to. ok is false when the subphase is unknown or the chain never
// reaches a phase (a malformed tree).
func (t *ProjectTree) OwningPhase(subphaseID string) (*domain.Phase, bool) {
	s, ok := t.subphases[subphaseID]
	if !ok {
		return nil, false
	}
	if s.ParentPhaseID == nil {
		chain := t.AncestorChain(subphaseID)
		if len(chain) == 0 {
			return nil, false
		}
		top := chain[len(chain)-1]
		if top.ParentPhaseID == nil {
			return nil, false
		}
		s = top
	}
	ph, ok := t.phases[*s.ParentPhaseID]
	return ph, ok
}

func (t *ProjectTree) resolveIDs(ids []string) []*domain.Subphase {
	out := make([]*domain.Subphase, 0, len(ids))
	for _, id := range ids {
		if s, ok := t.subphases[id]; ok {
			out = append(out, s)
		}
	}
	return out
}
