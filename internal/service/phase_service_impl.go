package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/db"
	"github.com/avereen/plancast/internal/domain"
	"github.com/avereen/plancast/internal/repository"
	"github.com/google/uuid"
)

type phaseService struct {
	phases repository.PhaseRepo
	tree   TreeService
	engine *cascade.Engine
	uow    db.UnitOfWork
}

func NewPhaseService(phases repository.PhaseRepo, tree TreeService, engine *cascade.Engine, uow db.UnitOfWork) PhaseService {
	return &phaseService{phases: phases, tree: tree, engine: engine, uow: uow}
}

func (s *phaseService) Create(ctx context.Context, ph *domain.Phase) (cascade.Result, error) {
	if ph.ID == "" {
		ph.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	ph.CreatedAt = now
	ph.UpdatedAt = now
	if err := ph.Validate(); err != nil {
		return cascade.Result{}, err
	}
	if err := s.phases.Create(ctx, ph); err != nil {
		return cascade.Result{}, err
	}

	r, ok := ph.DateRange()
	if !ok {
		return cascade.Result{}, nil
	}
	tree, err := s.tree.Fetch(ctx, ph.ProjectID)
	if err != nil {
		return cascade.Result{}, err
	}
	return s.engine.Cascade(ctx, tree, cascade.Request{
		PhaseID:      ph.ID,
		Mode:         cascade.ModeExpand,
		ChangedRange: &r,
	})
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error) {
	return s.phases.ListByProject(ctx, projectID)
}

func (s *phaseService) Rename(ctx context.Context, id, name string) error {
	ph, err := s.phases.GetByID(ctx, id)
	if err != nil {
		return err
	}
	ph.Name = name
	ph.UpdatedAt = time.Now().UTC()
	if err := ph.Validate(); err != nil {
		return err
	}
	return s.phases.Update(ctx, ph)
}

// SetDates replaces a phase's range and reconciles the project. An edit
// that reaches outside the old range expands upward; a pure narrowing
// shrinks the project against the surviving phase ranges.
func (s *phaseService) SetDates(ctx context.Context, id string, start, end time.Time) (cascade.Result, error) {
	ph, err := s.phases.GetByID(ctx, id)
	if err != nil {
		return cascade.Result{}, err
	}
	newRange, err := domain.NewDateRange(start, end)
	if err != nil {
		return cascade.Result{}, err
	}
	if ph.IsMilestone && !newRange.SingleDay() {
		return cascade.Result{}, fmt.Errorf("phase %s is a milestone and must keep a single date", id)
	}

	oldRange, hadRange := ph.DateRange()
	if hadRange && newRange.Equal(oldRange) {
		return cascade.Result{}, nil
	}
	if err := s.phases.PersistRange(ctx, id, newRange); err != nil {
		return cascade.Result{}, err
	}

	tree, err := s.tree.Fetch(ctx, ph.ProjectID)
	if err != nil {
		return cascade.Result{}, err
	}

	if !hadRange || !oldRange.Contains(newRange) {
		return s.engine.Cascade(ctx, tree, cascade.Request{
			PhaseID:      id,
			Mode:         cascade.ModeExpand,
			ChangedRange: &newRange,
		})
	}

	changed, err := s.engine.ShrinkProject(ctx, tree)
	return cascade.Result{ProjectUpdated: changed}, err
}

// Reorder rewrites order indexes for a project's phases in one
// transaction, mirroring a drag-and-drop reorder. orderedIDs must name
// each of the project's phases exactly once.
func (s *phaseService) Reorder(ctx context.Context, projectID string, orderedIDs []string) error {
	current, err := s.phases.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(current) {
		return fmt.Errorf("reorder needs all %d phases, got %d", len(current), len(orderedIDs))
	}
	known := make(map[string]bool, len(current))
	for _, ph := range current {
		known[ph.ID] = true
	}
	for _, id := range orderedIDs {
		if !known[id] {
			return fmt.Errorf("phase %s does not belong to project %s", id, projectID)
		}
		delete(known, id)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		for i, id := range orderedIDs {
			if err := txPhases.SetOrderIndex(ctx, id, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the phase with its whole subphase subtree, then shrinks
// the project against the remaining phases.
func (s *phaseService) Delete(ctx context.Context, id string) (cascade.Result, error) {
	ph, err := s.phases.GetByID(ctx, id)
	if err != nil {
		return cascade.Result{}, err
	}
	if err := s.phases.Delete(ctx, id); err != nil {
		return cascade.Result{}, err
	}

	tree, err := s.tree.Fetch(ctx, ph.ProjectID)
	if err != nil {
		return cascade.Result{}, err
	}
	changed, err := s.engine.ShrinkProject(ctx, tree)
	return cascade.Result{ProjectUpdated: changed}, err
}
