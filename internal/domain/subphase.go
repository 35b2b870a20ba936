package domain

import (
	"fmt"
	"time"
)

// Subphase is a nested plan node. Its parent is either a phase or another
// subphase, never both and never neither; parentage is fixed at creation,
// so cycles cannot be introduced through the write path. ProjectID is
// denormalized for project-scoped listing.
type Subphase struct {
	ID               string
	ProjectID        string
	ParentPhaseID    *string
	ParentSubphaseID *string
	Name             string
	StartDate        *time.Time
	EndDate          *time.Time
	IsMilestone      bool
	OrderIndex       int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (s *Subphase) Validate() error {
	if s.ProjectID == "" {
		return fmt.Errorf("subphase requires a project")
	}
	if s.Name == "" {
		return fmt.Errorf("subphase name is required")
	}
	if (s.ParentPhaseID == nil) == (s.ParentSubphaseID == nil) {
		return fmt.Errorf("subphase requires exactly one parent: a phase or a subphase")
	}
	return validateNodeDates(s.StartDate, s.EndDate, s.IsMilestone)
}

// DateRange returns the subphase's range; ok is false when dates are unset.
func (s *Subphase) DateRange() (DateRange, bool) {
	return rangeOf(s.StartDate, s.EndDate)
}

// SetDateRange overwrites both dates from r.
func (s *Subphase) SetDateRange(r DateRange) {
	start, end := r.Start, r.End
	s.StartDate = &start
	s.EndDate = &end
}
