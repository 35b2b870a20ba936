package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/domain"
	"github.com/avereen/plancast/internal/repository"
	"github.com/google/uuid"
)

type subphaseService struct {
	subphases repository.SubphaseRepo
	tree      TreeService
	engine    *cascade.Engine
}

func NewSubphaseService(subphases repository.SubphaseRepo, tree TreeService, engine *cascade.Engine) SubphaseService {
	return &subphaseService{subphases: subphases, tree: tree, engine: engine}
}

func (s *subphaseService) Create(ctx context.Context, sub *domain.Subphase) (cascade.Result, error) {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if err := sub.Validate(); err != nil {
		return cascade.Result{}, err
	}
	if err := s.subphases.Create(ctx, sub); err != nil {
		return cascade.Result{}, err
	}

	r, ok := sub.DateRange()
	if !ok {
		return cascade.Result{}, nil
	}
	tree, err := s.tree.Fetch(ctx, sub.ProjectID)
	if err != nil {
		return cascade.Result{}, err
	}
	req, ok := ancestryRequest(tree, sub, cascade.ModeExpand)
	if !ok {
		return cascade.Result{}, nil
	}
	req.ChangedRange = &r
	return s.engine.Cascade(ctx, tree, req)
}

func (s *subphaseService) GetByID(ctx context.Context, id string) (*domain.Subphase, error) {
	return s.subphases.GetByID(ctx, id)
}

func (s *subphaseService) Rename(ctx context.Context, id, name string) error {
	sub, err := s.subphases.GetByID(ctx, id)
	if err != nil {
		return err
	}
	sub.Name = name
	sub.UpdatedAt = time.Now().UTC()
	if err := sub.Validate(); err != nil {
		return err
	}
	return s.subphases.Update(ctx, sub)
}

// SetDates replaces a subphase's range and reconciles its ancestors. An
// edit that reaches outside the old range expands the ancestor chain; a
// pure narrowing shrinks it from the surviving children at each level.
func (s *subphaseService) SetDates(ctx context.Context, id string, start, end time.Time) (cascade.Result, error) {
	sub, err := s.subphases.GetByID(ctx, id)
	if err != nil {
		return cascade.Result{}, err
	}
	newRange, err := domain.NewDateRange(start, end)
	if err != nil {
		return cascade.Result{}, err
	}
	if sub.IsMilestone && !newRange.SingleDay() {
		return cascade.Result{}, fmt.Errorf("subphase %s is a milestone and must keep a single date", id)
	}

	oldRange, hadRange := sub.DateRange()
	if hadRange && newRange.Equal(oldRange) {
		return cascade.Result{}, nil
	}
	if err := s.subphases.PersistRange(ctx, id, newRange); err != nil {
		return cascade.Result{}, err
	}

	tree, err := s.tree.Fetch(ctx, sub.ProjectID)
	if err != nil {
		return cascade.Result{}, err
	}

	mode := cascade.ModeShrink
	if !hadRange || !oldRange.Contains(newRange) {
		mode = cascade.ModeExpand
	}
	req, ok := ancestryRequest(tree, sub, mode)
	if !ok {
		return cascade.Result{}, nil
	}
	if mode == cascade.ModeExpand {
		req.ChangedRange = &newRange
	}
	return s.engine.Cascade(ctx, tree, req)
}

// Delete removes the subphase with its subtree, then shrinks the former
// ancestor chain against the surviving children.
func (s *subphaseService) Delete(ctx context.Context, id string) (cascade.Result, error) {
	sub, err := s.subphases.GetByID(ctx, id)
	if err != nil {
		return cascade.Result{}, err
	}
	if err := s.subphases.Delete(ctx, id); err != nil {
		return cascade.Result{}, err
	}

	tree, err := s.tree.Fetch(ctx, sub.ProjectID)
	if err != nil {
		return cascade.Result{}, err
	}
	req, ok := ancestryRequest(tree, sub, cascade.ModeShrink)
	if !ok {
		return cascade.Result{}, nil
	}
	return s.engine.Cascade(ctx, tree, req)
}

// ancestryRequest builds the cascade request for a subphase mutation from
// the node's stored parent link. ok is false when the parent chain cannot
// be resolved in the snapshot, for example when the parent was deleted
// between the mutation and the re-fetch.
func ancestryRequest(tree *cascade.ProjectTree, sub *domain.Subphase, mode cascade.Mode) (cascade.Request, bool) {
	if sub.ParentPhaseID != nil {
		return cascade.Request{PhaseID: *sub.ParentPhaseID, Mode: mode}, true
	}
	ph, ok := tree.OwningPhase(*sub.ParentSubphaseID)
	if !ok {
		return cascade.Request{}, false
	}
	return cascade.Request{
		PhaseID:          ph.ID,
		Mode:             mode,
		ParentSubphaseID: sub.ParentSubphaseID,
	}, true
}
