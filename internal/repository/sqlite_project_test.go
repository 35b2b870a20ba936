package repository

import (
	"context"
	"testing"

	"github.com/avereen/plancast/internal/domain"
	"github.com/avereen/plancast/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteProjectRepo(db)

	proj := testutil.NewTestProject("Harbor Rebuild", testutil.WithProjectDates("2025-01-01", "2025-06-30"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Rebuild", fetched.Name)
	require.NotNil(t, fetched.StartDate)
	assert.Equal(t, testutil.MustDate("2025-01-01"), *fetched.StartDate)
	require.NotNil(t, fetched.EndDate)
	assert.Equal(t, testutil.MustDate("2025-06-30"), *fetched.EndDate)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepo_NilDatesRoundtrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteProjectRepo(db)

	proj := testutil.NewTestProject("Undated")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.StartDate)
	assert.Nil(t, fetched.EndDate)
}

func TestProjectRepo_PersistRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteProjectRepo(db)

	proj := testutil.NewTestProject("Ranged", testutil.WithProjectDates("2025-01-01", "2025-01-31"))
	require.NoError(t, repo.Create(ctx, proj))

	r, err := domain.NewDateRange(testutil.MustDate("2025-01-01"), testutil.MustDate("2025-02-10"))
	require.NoError(t, err)
	require.NoError(t, repo.PersistRange(ctx, proj.ID, r))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.MustDate("2025-02-10"), *fetched.EndDate)
}

func TestProjectRepo_PersistRange_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	r, err := domain.NewDateRange(testutil.MustDate("2025-01-01"), testutil.MustDate("2025-01-02"))
	require.NoError(t, err)
	err = repo.PersistRange(context.Background(), "missing", r)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepo_PersistRange_RejectsInvertedDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteProjectRepo(db)

	proj := testutil.NewTestProject("Guarded")
	require.NoError(t, repo.Create(ctx, proj))

	bad := domain.DateRange{Start: testutil.MustDate("2025-02-01"), End: testutil.MustDate("2025-01-01")}
	err := repo.PersistRange(ctx, proj.ID, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteProjectRepo(db)

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Beta")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Alpha")))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Alpha", projects[0].Name, "listed by name")
}
