package repository

import (
	"context"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/domain"
)

// RangeStore bundles the three repositories behind the cascade engine's
// Store interface. Each write is independent; there is no transaction
// spanning a cascade.
type RangeStore struct {
	projects  ProjectRepo
	phases    PhaseRepo
	subphases SubphaseRepo
}

// NewRangeStore creates a RangeStore over the given repositories.
func NewRangeStore(projects ProjectRepo, phases PhaseRepo, subphases SubphaseRepo) *RangeStore {
	return &RangeStore{projects: projects, phases: phases, subphases: subphases}
}

var _ cascade.Store = (*RangeStore)(nil)

func (s *RangeStore) PersistSubphaseRange(ctx context.Context, id string, r domain.DateRange) error {
	return s.subphases.PersistRange(ctx, id, r)
}

func (s *RangeStore) PersistPhaseRange(ctx context.Context, id string, r domain.DateRange) error {
	return s.phases.PersistRange(ctx, id, r)
}

func (s *RangeStore) PersistProjectRange(ctx context.Context, id string, r domain.DateRange) error {
	return s.projects.PersistRange(ctx, id, r)
}
