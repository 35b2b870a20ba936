package repository

import (
	"context"

	"github.com/avereen/plancast/internal/domain"
)

// Repositories wrap domain.ErrNotFound when a referenced row is missing
// and domain.ErrValidation when a write is rejected at the boundary.

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	PersistRange(ctx context.Context, id string, r domain.DateRange) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, ph *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error)
	Update(ctx context.Context, ph *domain.Phase) error
	PersistRange(ctx context.Context, id string, r domain.DateRange) error
	SetOrderIndex(ctx context.Context, id string, orderIndex int) error
	Delete(ctx context.Context, id string) error
}

type SubphaseRepo interface {
	Create(ctx context.Context, s *domain.Subphase) error
	GetByID(ctx context.Context, id string) (*domain.Subphase, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Subphase, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Subphase, error)
	ListChildren(ctx context.Context, parentSubphaseID string) ([]*domain.Subphase, error)
	Update(ctx context.Context, s *domain.Subphase) error
	PersistRange(ctx context.Context, id string, r domain.DateRange) error
	SetOrderIndex(ctx context.Context, id string, orderIndex int) error
	Delete(ctx context.Context, id string) error
}
