package cli

import (
	"testing"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/repository"
	"github.com/avereen/plancast/internal/service"
	"github.com/avereen/plancast/internal/testutil"
)

// newTestApp wires a full App over an in-memory database.
func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	projects := repository.NewSQLiteProjectRepo(database)
	phases := repository.NewSQLitePhaseRepo(database)
	subphases := repository.NewSQLiteSubphaseRepo(database)

	engine := cascade.NewEngine(repository.NewRangeStore(projects, phases, subphases))
	tree := service.NewTreeService(projects, phases, subphases)

	return &App{
		Projects:      service.NewProjectService(projects),
		Phases:        service.NewPhaseService(phases, tree, engine, testutil.NewTestUoW(database)),
		Subphases:     service.NewSubphaseService(subphases, tree, engine),
		Tree:          tree,
		IsInteractive: func() bool { return false },
	}
}
