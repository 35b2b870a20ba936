package cascade

import (
	"context"
	"errors"

	"github.com/avereen/plancast/internal/domain"
)

// Mode selects how a cascade reconciles ancestors.
type Mode string

const (
	// ModeExpand widens ancestor ranges to cover an inserted or extended
	// descendant. Triggered by create and date-extending edits.
	ModeExpand Mode = "expand"

	// ModeShrink recomputes ancestor ranges from surviving children.
	// Triggered by deletes and date-narrowing edits.
	ModeShrink Mode = "shrink"
)

// NodeKind identifies the tree level a range update applies to.
type NodeKind string

const (
	NodeSubphase NodeKind = "subphase"
	NodePhase    NodeKind = "phase"
	NodeProject  NodeKind = "project"
)

// Request describes one mutation's cascade. PhaseID names the phase whose
// subtree changed. ParentSubphaseID is the changed node's nearest subphase
// ancestor, nil when the changed node sits directly under the phase.
// ChangedRange carries the new bounds for expand mode; shrink mode derives
// bounds from surviving children and ignores it.
type Request struct {
	PhaseID          string
	Mode             Mode
	ChangedRange     *domain.DateRange
	ParentSubphaseID *string
}

// RangeUpdate is one ancestor's new range, to be persisted by the caller
// or the engine.
type RangeUpdate struct {
	Kind  NodeKind
	ID    string
	Range domain.DateRange
}

// Result reports which ancestors were actually written.
type Result struct {
	SubphasesUpdated int
	PhaseUpdated     bool
	ProjectUpdated   bool
}

// Store persists individual node ranges. Implementations fail with
// domain.ErrNotFound when the node no longer exists and
// domain.ErrValidation when the range is rejected at the boundary.
type Store interface {
	PersistSubphaseRange(ctx context.Context, id string, r domain.DateRange) error
	PersistPhaseRange(ctx context.Context, id string, r domain.DateRange) error
	PersistProjectRange(ctx context.Context, id string, r domain.DateRange) error
}

// Engine propagates date-range changes from a mutated node up through its
// ancestor chain. One invocation per mutation; writes are issued
// sequentially, nearest ancestor first, and are not transactional — a
// partially applied cascade is a transient inconsistency healed by the
// next mutation's cascade.
type Engine struct {
	store Store
}

// NewEngine creates an Engine writing through the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// chainNode adapts one tree level so the walk below is uniform.
type chainNode struct {
	kind     NodeKind
	id       string
	current  func() (domain.DateRange, bool)
	assign   func(domain.DateRange)
	covering func() (domain.DateRange, bool)
}

// Plan computes the ancestor updates a cascade implies, without touching
// storage. The snapshot's node ranges are updated in place so each level
// reconciles against its already-reconciled child; running Plan again on
// the same snapshot therefore yields nothing.
//
// An unknown PhaseID makes the whole cascade a no-op: the phase may have
// been deleted concurrently.
func Plan(tree *ProjectTree, req Request) []RangeUpdate {
	if _, ok := tree.Phase(req.PhaseID); !ok {
		return nil
	}

	chain := buildChain(tree, req)

	switch req.Mode {
	case ModeShrink:
		return planShrink(chain)
	default:
		return planExpand(chain, req.ChangedRange)
	}
}

func buildChain(tree *ProjectTree, req Request) []chainNode {
	var chain []chainNode

	appendSubphase := func(s *domain.Subphase) {
		chain = append(chain, chainNode{
			kind:     NodeSubphase,
			id:       s.ID,
			current:  s.DateRange,
			assign:   s.SetDateRange,
			covering: func() (domain.DateRange, bool) { return CoveringRange(tree.SubphaseChildren(s.ID)) },
		})
	}

	if req.ParentSubphaseID != nil {
		if parent, ok := tree.Subphase(*req.ParentSubphaseID); ok {
			appendSubphase(parent)
			for _, anc := range tree.AncestorChain(parent.ID) {
				appendSubphase(anc)
			}
		}
	}

	ph, _ := tree.Phase(req.PhaseID)
	chain = append(chain, chainNode{
		kind:     NodePhase,
		id:       ph.ID,
		current:  ph.DateRange,
		assign:   ph.SetDateRange,
		covering: func() (domain.DateRange, bool) { return CoveringRange(tree.PhaseChildren(ph.ID)) },
	})

	project := tree.Project()
	chain = append(chain, chainNode{
		kind:     NodeProject,
		id:       project.ID,
		current:  project.DateRange,
		assign:   project.SetDateRange,
		covering: func() (domain.DateRange, bool) { return CoveringRange(tree.Phases()) },
	})

	return chain
}

// planExpand widens each ancestor to the union of its own range and the
// child's resulting range. The child range fed to level N+1 is level N's
// resulting range, so the pass is O(chain length) with no re-scans.
func planExpand(chain []chainNode, changed *domain.DateRange) []RangeUpdate {
	if changed == nil {
		return nil
	}

	var updates []RangeUpdate
	child := *changed
	for _, n := range chain {
		cur, ok := n.current()
		next := child
		if ok {
			next = cur.Union(child)
		}
		if !ok || !next.Equal(cur) {
			n.assign(next)
			updates = append(updates, RangeUpdate{Kind: n.kind, ID: n.id, Range: next})
		}
		child = next
	}
	return updates
}

// planShrink recomputes each ancestor from its direct children, using the
// in-place reconciled values from the level below. A childless node keeps
// its range: an empty container's user-set dates are not collapsed. The
// walk stops at the first unchanged level — every input above it is the
// same as before the mutation.
func planShrink(chain []chainNode) []RangeUpdate {
	var updates []RangeUpdate
	for _, n := range chain {
		covering, ok := n.covering()
		if !ok {
			break
		}
		cur, hasCur := n.current()
		if hasCur && covering.Equal(cur) {
			break
		}
		n.assign(covering)
		updates = append(updates, RangeUpdate{Kind: n.kind, ID: n.id, Range: covering})
	}
	return updates
}

// Cascade plans and applies one mutation's cascade. Each ancestor write is
// independent: a vanished node (domain.ErrNotFound) is skipped and the
// cascade continues; any other error stops the cascade with the writes so
// far left in effect. The result counts only writes that happened.
func (e *Engine) Cascade(ctx context.Context, tree *ProjectTree, req Request) (Result, error) {
	var res Result
	for _, u := range Plan(tree, req) {
		if err := e.persist(ctx, u); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return res, err
		}
		switch u.Kind {
		case NodeSubphase:
			res.SubphasesUpdated++
		case NodePhase:
			res.PhaseUpdated = true
		case NodeProject:
			res.ProjectUpdated = true
		}
	}
	return res, nil
}

// ShrinkProject reconciles the project root alone against its surviving
// phases. Phase-level deletes and narrowings use this entry point: the
// cascade request cannot name a phase that no longer exists.
func (e *Engine) ShrinkProject(ctx context.Context, tree *ProjectTree) (bool, error) {
	covering, ok := CoveringRange(tree.Phases())
	if !ok {
		return false, nil
	}
	project := tree.Project()
	if cur, has := project.DateRange(); has && covering.Equal(cur) {
		return false, nil
	}
	project.SetDateRange(covering)
	err := e.store.PersistProjectRange(ctx, project.ID, covering)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) persist(ctx context.Context, u RangeUpdate) error {
	switch u.Kind {
	case NodeSubphase:
		return e.store.PersistSubphaseRange(ctx, u.ID, u.Range)
	case NodePhase:
		return e.store.PersistPhaseRange(ctx, u.ID, u.Range)
	default:
		return e.store.PersistProjectRange(ctx, u.ID, u.Range)
	}
}
