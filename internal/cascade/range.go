package cascade

import "github.com/avereen/plancast/internal/domain"

// Ranged is any plan node carrying an optional date range.
type Ranged interface {
	DateRange() (domain.DateRange, bool)
}

// CoveringRange computes the minimal [start,end] interval containing every
// child's range: min of starts, max of ends, compared as calendar dates.
// ok is false when no child contributes a range — "no bound to impose" —
// which is distinct from a zero-width range.
//
// The covering range is always derived from direct children whose own
// ranges have already been reconciled; the cascade walks bottom-up so this
// precondition holds at every level.
func CoveringRange[N Ranged](children []N) (domain.DateRange, bool) {
	var covering domain.DateRange
	found := false
	for _, c := range children {
		r, ok := c.DateRange()
		if !ok {
			continue
		}
		if !found {
			covering = r
			found = true
			continue
		}
		covering = covering.Union(r)
	}
	return covering, found
}
