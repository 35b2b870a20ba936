package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avereen/plancast/internal/db"
	"github.com/avereen/plancast/internal/domain"
)

const phaseColumns = `id, project_id, name, start_date, end_date, is_milestone, order_index, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(db db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: db}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, ph *domain.Phase) error {
	query := `INSERT INTO phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ph.ID,
		ph.ProjectID,
		ph.Name,
		nullableDateToString(ph.StartDate),
		nullableDateToString(ph.EndDate),
		boolToInt(ph.IsMilestone),
		ph.OrderIndex,
		ph.CreatedAt.Format(time.RFC3339),
		ph.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	ph, err := scanPhase(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("phase: %w", domain.ErrNotFound)
	}
	return ph, err
}

func (r *SQLitePhaseRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE project_id = ? ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		ph, err := scanPhase(rows.Scan)
		if err != nil {
			return nil, err
		}
		phases = append(phases, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, ph *domain.Phase) error {
	query := `UPDATE phases SET name = ?, start_date = ?, end_date = ?, is_milestone = ?,
		order_index = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		ph.Name,
		nullableDateToString(ph.StartDate),
		nullableDateToString(ph.EndDate),
		boolToInt(ph.IsMilestone),
		ph.OrderIndex,
		ph.UpdatedAt.Format(time.RFC3339),
		ph.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return requireRow(res, "phase", ph.ID)
}

// PersistRange updates only the phase's date range.
func (r *SQLitePhaseRepo) PersistRange(ctx context.Context, id string, rng domain.DateRange) error {
	if err := validateRange("phase", id, rng); err != nil {
		return err
	}
	query := `UPDATE phases SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rng.Start.Format(dateLayout), rng.End.Format(dateLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("persisting phase range: %w", err)
	}
	return requireRow(res, "phase", id)
}

func (r *SQLitePhaseRepo) SetOrderIndex(ctx context.Context, id string, orderIndex int) error {
	query := `UPDATE phases SET order_index = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, orderIndex, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("reordering phase: %w", err)
	}
	return requireRow(res, "phase", id)
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}

// scanPhase scans one phase row through any Scan-shaped function.
func scanPhase(scan func(dest ...any) error) (*domain.Phase, error) {
	var ph domain.Phase
	var startStr, endStr sql.NullString
	var milestoneInt int
	var createdAtStr, updatedAtStr string

	err := scan(&ph.ID, &ph.ProjectID, &ph.Name, &startStr, &endStr,
		&milestoneInt, &ph.OrderIndex, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}

	ph.IsMilestone = intToBool(milestoneInt)
	ph.StartDate = parseNullableDate(startStr)
	ph.EndDate = parseNullableDate(endStr)

	var parseErr error
	ph.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	ph.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &ph, nil
}
