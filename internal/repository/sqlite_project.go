package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avereen/plancast/internal/db"
	"github.com/avereen/plancast/internal/domain"
)

const projectColumns = `id, name, start_date, end_date, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullableDateToString(p.StartDate),
		nullableDateToString(p.EndDate),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := r.scanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		nullableDateToString(p.StartDate),
		nullableDateToString(p.EndDate),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireRow(res, "project", p.ID)
}

// PersistRange updates only the project's date range. Fails with
// domain.ErrNotFound when the project vanished and domain.ErrValidation
// when the range is inverted.
func (r *SQLiteProjectRepo) PersistRange(ctx context.Context, id string, rng domain.DateRange) error {
	if err := validateRange("project", id, rng); err != nil {
		return err
	}
	query := `UPDATE projects SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rng.Start.Format(dateLayout), rng.End.Format(dateLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("persisting project range: %w", err)
	}
	return requireRow(res, "project", id)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var startStr, endStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.Name, &startStr, &endStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return r.populateProject(&p, startStr, endStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteProjectRepo) scanProjectRow(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var startStr, endStr sql.NullString
	var createdAtStr, updatedAtStr string

	if err := rows.Scan(&p.ID, &p.Name, &startStr, &endStr, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return r.populateProject(&p, startStr, endStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteProjectRepo) populateProject(p *domain.Project, startStr, endStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Project, error) {
	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	p.StartDate = parseNullableDate(startStr)
	p.EndDate = parseNullableDate(endStr)
	return p, nil
}

// validateRange rejects inverted ranges before they reach storage. The
// cascade's own math never produces one; this is the persistence-boundary
// check.
func validateRange(kind, id string, rng domain.DateRange) error {
	if rng.End.Before(rng.Start) {
		return fmt.Errorf("%s %s: start %s after end %s: %w", kind, id,
			rng.Start.Format(dateLayout), rng.End.Format(dateLayout), domain.ErrValidation)
	}
	return nil
}

// requireRow converts a zero-row update into domain.ErrNotFound.
func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
