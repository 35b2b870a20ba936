package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avereen/plancast/internal/db"
	"github.com/avereen/plancast/internal/domain"
)

const subphaseColumns = `id, project_id, parent_phase_id, parent_subphase_id, name,
		start_date, end_date, is_milestone, order_index, created_at, updated_at`

// SQLiteSubphaseRepo implements SubphaseRepo using a SQLite database.
type SQLiteSubphaseRepo struct {
	db db.DBTX
}

// NewSQLiteSubphaseRepo creates a new SQLiteSubphaseRepo.
func NewSQLiteSubphaseRepo(db db.DBTX) *SQLiteSubphaseRepo {
	return &SQLiteSubphaseRepo{db: db}
}

func (r *SQLiteSubphaseRepo) Create(ctx context.Context, s *domain.Subphase) error {
	query := `INSERT INTO subphases (` + subphaseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		s.ParentPhaseID, // *string: nil becomes SQL NULL
		s.ParentSubphaseID,
		s.Name,
		nullableDateToString(s.StartDate),
		nullableDateToString(s.EndDate),
		boolToInt(s.IsMilestone),
		s.OrderIndex,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subphase: %w", err)
	}
	return nil
}

func (r *SQLiteSubphaseRepo) GetByID(ctx context.Context, id string) (*domain.Subphase, error) {
	query := `SELECT ` + subphaseColumns + ` FROM subphases WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanSubphase(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("subphase: %w", domain.ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSubphaseRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Subphase, error) {
	query := `SELECT ` + subphaseColumns + ` FROM subphases WHERE project_id = ? ORDER BY order_index, created_at`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteSubphaseRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Subphase, error) {
	query := `SELECT ` + subphaseColumns + ` FROM subphases WHERE parent_phase_id = ? ORDER BY order_index, created_at`
	return r.list(ctx, query, phaseID)
}

func (r *SQLiteSubphaseRepo) ListChildren(ctx context.Context, parentSubphaseID string) ([]*domain.Subphase, error) {
	query := `SELECT ` + subphaseColumns + ` FROM subphases WHERE parent_subphase_id = ? ORDER BY order_index, created_at`
	return r.list(ctx, query, parentSubphaseID)
}

func (r *SQLiteSubphaseRepo) Update(ctx context.Context, s *domain.Subphase) error {
	query := `UPDATE subphases SET name = ?, start_date = ?, end_date = ?, is_milestone = ?,
		order_index = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		nullableDateToString(s.StartDate),
		nullableDateToString(s.EndDate),
		boolToInt(s.IsMilestone),
		s.OrderIndex,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subphase: %w", err)
	}
	return requireRow(res, "subphase", s.ID)
}

// PersistRange updates only the subphase's date range.
func (r *SQLiteSubphaseRepo) PersistRange(ctx context.Context, id string, rng domain.DateRange) error {
	if err := validateRange("subphase", id, rng); err != nil {
		return err
	}
	query := `UPDATE subphases SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rng.Start.Format(dateLayout), rng.End.Format(dateLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("persisting subphase range: %w", err)
	}
	return requireRow(res, "subphase", id)
}

func (r *SQLiteSubphaseRepo) SetOrderIndex(ctx context.Context, id string, orderIndex int) error {
	query := `UPDATE subphases SET order_index = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, orderIndex, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("reordering subphase: %w", err)
	}
	return requireRow(res, "subphase", id)
}

// Delete removes a subphase; descendants go with it via ON DELETE CASCADE.
func (r *SQLiteSubphaseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subphases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subphase: %w", err)
	}
	return nil
}

func (r *SQLiteSubphaseRepo) list(ctx context.Context, query string, arg any) ([]*domain.Subphase, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing subphases: %w", err)
	}
	defer rows.Close()

	var subphases []*domain.Subphase
	for rows.Next() {
		s, err := scanSubphase(rows.Scan)
		if err != nil {
			return nil, err
		}
		subphases = append(subphases, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subphases: %w", err)
	}
	return subphases, nil
}

// scanSubphase scans one subphase row through any Scan-shaped function.
func scanSubphase(scan func(dest ...any) error) (*domain.Subphase, error) {
	var s domain.Subphase
	var parentPhase, parentSubphase sql.NullString
	var startStr, endStr sql.NullString
	var milestoneInt int
	var createdAtStr, updatedAtStr string

	err := scan(&s.ID, &s.ProjectID, &parentPhase, &parentSubphase, &s.Name,
		&startStr, &endStr, &milestoneInt, &s.OrderIndex, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning subphase: %w", err)
	}

	if parentPhase.Valid {
		s.ParentPhaseID = &parentPhase.String
	}
	if parentSubphase.Valid {
		s.ParentSubphaseID = &parentSubphase.String
	}
	s.IsMilestone = intToBool(milestoneInt)
	s.StartDate = parseNullableDate(startStr)
	s.EndDate = parseNullableDate(endStr)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &s, nil
}
