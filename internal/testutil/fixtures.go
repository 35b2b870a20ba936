package testutil

import (
	"time"

	"github.com/avereen/plancast/internal/domain"
	"github.com/google/uuid"
)

// MustDate parses a YYYY-MM-DD string, panicking on bad test input.
func MustDate(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectDates(start, end string) ProjectOption {
	return func(p *domain.Project) {
		s, e := MustDate(start), MustDate(end)
		p.StartDate, p.EndDate = &s, &e
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseDates(start, end string) PhaseOption {
	return func(ph *domain.Phase) {
		s, e := MustDate(start), MustDate(end)
		ph.StartDate, ph.EndDate = &s, &e
	}
}

func WithPhaseMilestone(day string) PhaseOption {
	return func(ph *domain.Phase) {
		d := MustDate(day)
		ph.IsMilestone = true
		ph.StartDate, ph.EndDate = &d, &d
	}
}

func WithPhaseOrder(i int) PhaseOption {
	return func(ph *domain.Phase) {
		ph.OrderIndex = i
	}
}

func NewTestPhase(projectID, name string, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	ph := &domain.Phase{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(ph)
	}
	return ph
}

// Subphase options
type SubphaseOption func(*domain.Subphase)

func WithSubphaseDates(start, end string) SubphaseOption {
	return func(s *domain.Subphase) {
		from, to := MustDate(start), MustDate(end)
		s.StartDate, s.EndDate = &from, &to
	}
}

func WithSubphaseMilestone(day string) SubphaseOption {
	return func(s *domain.Subphase) {
		d := MustDate(day)
		s.IsMilestone = true
		s.StartDate, s.EndDate = &d, &d
	}
}

func WithSubphaseOrder(i int) SubphaseOption {
	return func(s *domain.Subphase) {
		s.OrderIndex = i
	}
}

// NewTestSubphase attaches a subphase directly under a phase.
func NewTestSubphase(projectID, phaseID, name string, opts ...SubphaseOption) *domain.Subphase {
	now := time.Now().UTC()
	s := &domain.Subphase{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		ParentPhaseID: &phaseID,
		Name:          name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestNestedSubphase attaches a subphase under another subphase.
func NewTestNestedSubphase(projectID, parentSubphaseID, name string, opts ...SubphaseOption) *domain.Subphase {
	now := time.Now().UTC()
	s := &domain.Subphase{
		ID:               uuid.New().String(),
		ProjectID:        projectID,
		ParentSubphaseID: &parentSubphaseID,
		Name:             name,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
