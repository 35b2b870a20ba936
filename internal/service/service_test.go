package service

import (
	"context"
	"testing"
	"time"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/domain"
	"github.com/avereen/plancast/internal/repository"
	"github.com/avereen/plancast/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires the services over an in-memory database so the tests
// observe full mutate-then-cascade behavior, not mocked pieces.
type testEnv struct {
	projects  repository.ProjectRepo
	phases    repository.PhaseRepo
	subphases repository.SubphaseRepo

	project  ProjectService
	phase    PhaseService
	subphase SubphaseService
	tree     TreeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)

	projects := repository.NewSQLiteProjectRepo(database)
	phases := repository.NewSQLitePhaseRepo(database)
	subphases := repository.NewSQLiteSubphaseRepo(database)

	engine := cascade.NewEngine(repository.NewRangeStore(projects, phases, subphases))
	tree := NewTreeService(projects, phases, subphases)

	return &testEnv{
		projects:  projects,
		phases:    phases,
		subphases: subphases,
		project:   NewProjectService(projects),
		phase:     NewPhaseService(phases, tree, engine, testutil.NewTestUoW(database)),
		subphase:  NewSubphaseService(subphases, tree, engine),
		tree:      tree,
	}
}

// seedProject creates a project with the given range, or undated when
// start is empty.
func (e *testEnv) seedProject(t *testing.T, ctx context.Context, start, end string) *domain.Project {
	t.Helper()
	var opts []testutil.ProjectOption
	if start != "" {
		opts = append(opts, testutil.WithProjectDates(start, end))
	}
	p := testutil.NewTestProject("Rollout", opts...)
	require.NoError(t, e.projects.Create(ctx, p))
	return p
}

func (e *testEnv) seedPhase(t *testing.T, ctx context.Context, projectID, name, start, end string) *domain.Phase {
	t.Helper()
	var opts []testutil.PhaseOption
	if start != "" {
		opts = append(opts, testutil.WithPhaseDates(start, end))
	}
	ph := testutil.NewTestPhase(projectID, name, opts...)
	require.NoError(t, e.phases.Create(ctx, ph))
	return ph
}

func (e *testEnv) seedSubphase(t *testing.T, ctx context.Context, projectID, phaseID, name, start, end string) *domain.Subphase {
	t.Helper()
	var opts []testutil.SubphaseOption
	if start != "" {
		opts = append(opts, testutil.WithSubphaseDates(start, end))
	}
	s := testutil.NewTestSubphase(projectID, phaseID, name, opts...)
	require.NoError(t, e.subphases.Create(ctx, s))
	return s
}

func (e *testEnv) seedNested(t *testing.T, ctx context.Context, projectID, parentID, name, start, end string) *domain.Subphase {
	t.Helper()
	var opts []testutil.SubphaseOption
	if start != "" {
		opts = append(opts, testutil.WithSubphaseDates(start, end))
	}
	s := testutil.NewTestNestedSubphase(projectID, parentID, name, opts...)
	require.NoError(t, e.subphases.Create(ctx, s))
	return s
}

func (e *testEnv) projectRange(t *testing.T, ctx context.Context, id string) (time.Time, time.Time) {
	t.Helper()
	p, err := e.projects.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p.StartDate)
	require.NotNil(t, p.EndDate)
	return *p.StartDate, *p.EndDate
}

func (e *testEnv) phaseRange(t *testing.T, ctx context.Context, id string) (time.Time, time.Time) {
	t.Helper()
	ph, err := e.phases.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, ph.StartDate)
	require.NotNil(t, ph.EndDate)
	return *ph.StartDate, *ph.EndDate
}

func (e *testEnv) subphaseRange(t *testing.T, ctx context.Context, id string) (time.Time, time.Time) {
	t.Helper()
	s, err := e.subphases.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, s.StartDate)
	require.NotNil(t, s.EndDate)
	return *s.StartDate, *s.EndDate
}

func requireRange(t *testing.T, start, end time.Time, wantStart, wantEnd string) {
	t.Helper()
	require.Equal(t, testutil.MustDate(wantStart), start)
	require.Equal(t, testutil.MustDate(wantEnd), end)
}
