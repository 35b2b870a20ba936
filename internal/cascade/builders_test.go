package cascade

import (
	"testing"

	"github.com/avereen/plancast/internal/domain"
)

// Test tree builders. Dates are passed as YYYY-MM-DD strings; empty
// strings leave a node undated.

func buildProject(t *testing.T, id, start, end string) *domain.Project {
	t.Helper()
	p := &domain.Project{ID: id, Name: id}
	if start != "" {
		s, e := date(t, start), date(t, end)
		p.StartDate, p.EndDate = &s, &e
	}
	return p
}

func buildPhase(t *testing.T, id, projectID, start, end string) *domain.Phase {
	t.Helper()
	ph := &domain.Phase{ID: id, ProjectID: projectID, Name: id}
	if start != "" {
		s, e := date(t, start), date(t, end)
		ph.StartDate, ph.EndDate = &s, &e
	}
	return ph
}

func buildSubphase(t *testing.T, id, projectID string, parentPhase, parentSub, start, end string) *domain.Subphase {
	t.Helper()
	s := &domain.Subphase{ID: id, ProjectID: projectID, Name: id}
	if parentPhase != "" {
		s.ParentPhaseID = &parentPhase
	}
	if parentSub != "" {
		s.ParentSubphaseID = &parentSub
	}
	if start != "" {
		from, to := date(t, start), date(t, end)
		s.StartDate, s.EndDate = &from, &to
	}
	return s
}
