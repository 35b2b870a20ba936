package cascade

import "github.com/avereen/plancast/internal/domain"

// AncestorChain resolves the parent subphases of the given subphase,
// nearest first, stopping when a node's parent is a phase. An unknown id
// yields an empty chain: the node may already be deleted, which callers
// treat as "no subphase ancestors", not an error.
//
// Iteration is bounded by the arena's subphase count, so an accidentally
// cyclic tree produces a truncated chain instead of an infinite loop.
func (t *ProjectTree) AncestorChain(subphaseID string) []*domain.Subphase {
	node, ok := t.subphases[subphaseID]
	if !ok {
		return nil
	}

	var chain []*domain.Subphase
	for i := 0; i < t.SubphaseCount(); i++ {
		if node.ParentSubphaseID == nil {
			break
		}
		parent, ok := t.subphases[*node.ParentSubphaseID]
		if !ok {
			break
		}
		chain = append(chain, parent)
		node = parent
	}
	return chain
}
