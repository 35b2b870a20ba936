package domain

import (
	"fmt"
	"time"
)

// Project is the root of a plan tree. Its date range is kept consistent
// with the union of its phases' ranges by the cascade engine; it is not
// re-validated on every read.
type Project struct {
	ID        string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields a caller controls directly.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	return validateNodeDates(p.StartDate, p.EndDate, false)
}

// DateRange returns the project's range; ok is false when dates are unset.
func (p *Project) DateRange() (DateRange, bool) {
	return rangeOf(p.StartDate, p.EndDate)
}

// SetDateRange overwrites both dates from r.
func (p *Project) SetDateRange(r DateRange) {
	start, end := r.Start, r.End
	p.StartDate = &start
	p.EndDate = &end
}

// DisplayID returns a short identifier for terminal output.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
