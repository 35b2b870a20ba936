package service

import (
	"context"
	"time"

	"github.com/avereen/plancast/internal/domain"
	"github.com/avereen/plancast/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := p.Validate(); err != nil {
		return err
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Rename(ctx context.Context, id, name string) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now().UTC()
	if err := p.Validate(); err != nil {
		return err
	}
	return s.projects.Update(ctx, p)
}

// SetDates replaces the project's own range. The project is the tree root,
// so no cascade follows; descendants keep their dates.
func (s *projectService) SetDates(ctx context.Context, id string, start, end time.Time) error {
	r, err := domain.NewDateRange(start, end)
	if err != nil {
		return err
	}
	return s.projects.PersistRange(ctx, id, r)
}

// Delete removes the project and, through foreign keys, every phase and
// subphase under it.
func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}
