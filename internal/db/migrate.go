package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date TEXT,
		end_date   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		start_date   TEXT,
		end_date     TEXT,
		is_milestone INTEGER NOT NULL DEFAULT 0,
		order_index  INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_project ON phases(project_id)`,

	// A subphase hangs off a phase or another subphase, never both.
	`CREATE TABLE IF NOT EXISTS subphases (
		id                 TEXT PRIMARY KEY,
		project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_phase_id    TEXT REFERENCES phases(id) ON DELETE CASCADE,
		parent_subphase_id TEXT REFERENCES subphases(id) ON DELETE CASCADE,
		name               TEXT NOT NULL,
		start_date         TEXT,
		end_date           TEXT,
		is_milestone       INTEGER NOT NULL DEFAULT 0,
		order_index        INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL,
		CHECK ((parent_phase_id IS NULL) != (parent_subphase_id IS NULL))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_subphases_project ON subphases(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subphases_parent_phase ON subphases(parent_phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subphases_parent_subphase ON subphases(parent_subphase_id)`,
}
