package service

import (
	"context"
	"time"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/domain"
)

// Mutating phase/subphase operations return the cascade.Result describing
// which ancestors were re-ranged, so callers can decide whether to
// re-fetch the tree.

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Rename(ctx context.Context, id, name string) error
	SetDates(ctx context.Context, id string, start, end time.Time) error
	Delete(ctx context.Context, id string) error
}

type PhaseService interface {
	Create(ctx context.Context, ph *domain.Phase) (cascade.Result, error)
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error)
	Rename(ctx context.Context, id, name string) error
	SetDates(ctx context.Context, id string, start, end time.Time) (cascade.Result, error)
	Reorder(ctx context.Context, projectID string, orderedIDs []string) error
	Delete(ctx context.Context, id string) (cascade.Result, error)
}

type SubphaseService interface {
	Create(ctx context.Context, s *domain.Subphase) (cascade.Result, error)
	GetByID(ctx context.Context, id string) (*domain.Subphase, error)
	Rename(ctx context.Context, id, name string) error
	SetDates(ctx context.Context, id string, start, end time.Time) (cascade.Result, error)
	Delete(ctx context.Context, id string) (cascade.Result, error)
}

// TreeService assembles the in-memory snapshot the cascade engine and the
// terminal views consume.
type TreeService interface {
	Fetch(ctx context.Context, projectID string) (*cascade.ProjectTree, error)
}
