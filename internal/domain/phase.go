package domain

import (
	"fmt"
	"time"
)

// Phase is a direct child of a project. Phases are ordered within their
// project by OrderIndex.
type Phase struct {
	ID          string
	ProjectID   string
	Name        string
	StartDate   *time.Time
	EndDate     *time.Time
	IsMilestone bool
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ph *Phase) Validate() error {
	if ph.ProjectID == "" {
		return fmt.Errorf("phase requires a project")
	}
	if ph.Name == "" {
		return fmt.Errorf("phase name is required")
	}
	return validateNodeDates(ph.StartDate, ph.EndDate, ph.IsMilestone)
}

// DateRange returns the phase's range; ok is false when dates are unset.
func (ph *Phase) DateRange() (DateRange, bool) {
	return rangeOf(ph.StartDate, ph.EndDate)
}

// SetDateRange overwrites both dates from r.
func (ph *Phase) SetDateRange(r DateRange) {
	start, end := r.Start, r.End
	ph.StartDate = &start
	ph.EndDate = &end
}
