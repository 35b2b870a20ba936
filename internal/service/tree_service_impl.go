package service

import (
	"context"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/repository"
)

type treeService struct {
	projects  repository.ProjectRepo
	phases    repository.PhaseRepo
	subphases repository.SubphaseRepo
}

func NewTreeService(projects repository.ProjectRepo, phases repository.PhaseRepo, subphases repository.SubphaseRepo) TreeService {
	return &treeService{projects: projects, phases: phases, subphases: subphases}
}

// Fetch loads the full current hierarchy for one project and indexes it
// into a cascade.ProjectTree snapshot.
func (s *treeService) Fetch(ctx context.Context, projectID string) (*cascade.ProjectTree, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	phases, err := s.phases.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	subphases, err := s.subphases.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return cascade.NewProjectTree(project, phases, subphases), nil
}
