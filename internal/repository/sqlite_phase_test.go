package repository

import (
	"context"
	"testing"

	"github.com/avereen/plancast/internal/domain"
	"github.com/avereen/plancast/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	phases := NewSQLitePhaseRepo(db)

	proj := testutil.NewTestProject("Proj")
	require.NoError(t, projects.Create(ctx, proj))

	phase := testutil.NewTestPhase(proj.ID, "Design", testutil.WithPhaseDates("2025-02-01", "2025-02-28"))
	require.NoError(t, phases.Create(ctx, phase))

	fetched, err := phases.GetByID(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design", fetched.Name)
	assert.Equal(t, proj.ID, fetched.ProjectID)
	assert.False(t, fetched.IsMilestone)
	require.NotNil(t, fetched.StartDate)
	assert.Equal(t, testutil.MustDate("2025-02-01"), *fetched.StartDate)
}

func TestPhaseRepo_MilestoneRoundtrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	phases := NewSQLitePhaseRepo(db)

	proj := testutil.NewTestProject("Proj")
	require.NoError(t, projects.Create(ctx, proj))

	phase := testutil.NewTestPhase(proj.ID, "Handover", testutil.WithPhaseMilestone("2025-04-15"))
	require.NoError(t, phases.Create(ctx, phase))

	fetched, err := phases.GetByID(ctx, phase.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsMilestone)
	r, ok := fetched.DateRange()
	require.True(t, ok)
	assert.True(t, r.SingleDay())
}

func TestPhaseRepo_ListByProjectOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	phases := NewSQLitePhaseRepo(db)

	proj := testutil.NewTestProject("Proj")
	require.NoError(t, projects.Create(ctx, proj))

	late := testutil.NewTestPhase(proj.ID, "Late", testutil.WithPhaseOrder(2))
	early := testutil.NewTestPhase(proj.ID, "Early", testutil.WithPhaseOrder(1))
	require.NoError(t, phases.Create(ctx, late))
	require.NoError(t, phases.Create(ctx, early))

	listed, err := phases.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Early", listed[0].Name)
	assert.Equal(t, "Late", listed[1].Name)
}

func TestPhaseRepo_SetOrderIndex(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	phases := NewSQLitePhaseRepo(db)

	proj := testutil.NewTestProject("Proj")
	require.NoError(t, projects.Create(ctx, proj))
	phase := testutil.NewTestPhase(proj.ID, "Movable")
	require.NoError(t, phases.Create(ctx, phase))

	require.NoError(t, phases.SetOrderIndex(ctx, phase.ID, 7))
	fetched, err := phases.GetByID(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, fetched.OrderIndex)

	assert.ErrorIs(t, phases.SetOrderIndex(ctx, "missing", 1), domain.ErrNotFound)
}

func TestPhaseRepo_PersistRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	phases := NewSQLitePhaseRepo(db)

	proj := testutil.NewTestProject("Proj")
	require.NoError(t, projects.Create(ctx, proj))
	phase := testutil.NewTestPhase(proj.ID, "Build", testutil.WithPhaseDates("2025-01-01", "2025-01-31"))
	require.NoError(t, phases.Create(ctx, phase))

	r, err := domain.NewDateRange(testutil.MustDate("2025-01-01"), testutil.MustDate("2025-02-10"))
	require.NoError(t, err)
	require.NoError(t, phases.PersistRange(ctx, phase.ID, r))

	fetched, err := phases.GetByID(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.MustDate("2025-02-10"), *fetched.EndDate)

	bad := domain.DateRange{Start: testutil.MustDate("2025-03-01"), End: testutil.MustDate("2025-02-01")}
	assert.ErrorIs(t, phases.PersistRange(ctx, phase.ID, bad), domain.ErrValidation)
}

func TestProjectRepo_DeleteCascadesToPhases(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	phases := NewSQLitePhaseRepo(db)

	proj := testutil.NewTestProject("Doomed")
	require.NoError(t, projects.Create(ctx, proj))
	phase := testutil.NewTestPhase(proj.ID, "Child")
	require.NoError(t, phases.Create(ctx, phase))

	require.NoError(t, projects.Delete(ctx, proj.ID))

	_, err := phases.GetByID(ctx, phase.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "phase should be cascade-deleted with its project")
}
