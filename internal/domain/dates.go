package domain

import (
	"fmt"
	"time"
)

// DateLayout is the storage and display format for calendar dates.
// Scheduling compares dates only; time-of-day carries no meaning.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC so that range comparisons are by
// calendar date regardless of how the time was constructed.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is a closed calendar-date interval: Start <= End always holds.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a DateRange from two dates, truncating both to
// calendar days. Returns an error if start falls after end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := Day(start), Day(end)
	if e.Before(s) {
		return DateRange{}, fmt.Errorf("start date %s is after end date %s",
			s.Format(DateLayout), e.Format(DateLayout))
	}
	return DateRange{Start: s, End: e}, nil
}

// Union returns the minimal range covering both r and o.
func (r DateRange) Union(o DateRange) DateRange {
	u := r
	if o.Start.Before(u.Start) {
		u.Start = o.Start
	}
	if o.End.After(u.End) {
		u.End = o.End
	}
	return u
}

// Contains reports whether o lies entirely within r.
func (r DateRange) Contains(o DateRange) bool {
	return !o.Start.Before(r.Start) && !o.End.After(r.End)
}

// Equal compares both endpoints as calendar dates.
func (r DateRange) Equal(o DateRange) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

// SingleDay reports whether the range collapses to one date (a milestone).
func (r DateRange) SingleDay() bool {
	return r.Start.Equal(r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// validateNodeDates enforces the shared date rules for phases and
// subphases: both dates set together, start <= end, and milestones
// collapse to a single date.
func validateNodeDates(start, end *time.Time, milestone bool) error {
	if (start == nil) != (end == nil) {
		return fmt.Errorf("start and end dates must be set together")
	}
	if start == nil {
		if milestone {
			return fmt.Errorf("a milestone requires a date")
		}
		return nil
	}
	s, e := Day(*start), Day(*end)
	if e.Before(s) {
		return fmt.Errorf("start date %s is after end date %s",
			s.Format(DateLayout), e.Format(DateLayout))
	}
	if milestone && !s.Equal(e) {
		return fmt.Errorf("a milestone must start and end on the same date")
	}
	return nil
}

// rangeOf converts a pair of optional dates into a DateRange.
// ok is false when the node has no dates set.
func rangeOf(start, end *time.Time) (DateRange, bool) {
	if start == nil || end == nil {
		return DateRange{}, false
	}
	return DateRange{Start: Day(*start), End: Day(*end)}, true
}
