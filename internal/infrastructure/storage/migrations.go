package storage

import (
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order.
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up:      migration001InitialSchema,
	},
}

// runMigrations applies any pending migrations inside transactions.
func (s *Storage) runMigrations() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range allMigrations {
		if m.Version <= current {
			continue
		}
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("applying migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.Version, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.Version, err)
		}
	}
	return nil
}

func migration001InitialSchema(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS lookups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		mode TEXT NOT NULL,
		source TEXT NOT NULL,
		hits INTEGER NOT NULL,
		days_searched INTEGER NOT NULL,
		files_json TEXT NOT NULL DEFAULT '[]',
		duration_ms INTEGER NOT NULL,
		looked_up_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_lookups_looked_up_at ON lookups(looked_up_at);
	CREATE INDEX IF NOT EXISTS idx_lookups_mode ON lookups(mode);
	`)
	return err
}
