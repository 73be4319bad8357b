package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite-backed lookup history.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage opens (or creates) the SQLite database and applies migrations.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Storage{db: db}
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveLookup records one executed search.
func (s *Storage) SaveLookup(rec *LookupRecord) error {
	filesJSON, _ := json.Marshal(rec.Files)

	res, err := s.db.Exec(`
	INSERT INTO lookups (query, mode, source, hits, days_searched, files_json, duration_ms, looked_up_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Query,
		rec.Mode,
		rec.Source,
		rec.Hits,
		rec.DaysSearched,
		string(filesJSON),
		rec.DurationMS,
		rec.LookedUpAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving lookup: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// RecentLookups returns the most recent lookups, newest first.
func (s *Storage) RecentLookups(limit int) ([]*LookupRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
	SELECT id, query, mode, source, hits, days_searched, files_json, duration_ms, looked_up_at
	FROM lookups ORDER BY looked_up_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying lookups: %w", err)
	}
	defer rows.Close()

	var out []*LookupRecord
	for rows.Next() {
		rec := &LookupRecord{}
		var lookedUpAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.Query,
			&rec.Mode,
			&rec.Source,
			&rec.Hits,
			&rec.DaysSearched,
			&rec.FilesJSON,
			&rec.DurationMS,
			&lookedUpAt,
		); err != nil {
			return nil, fmt.Errorf("scanning lookup: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, lookedUpAt); err == nil {
			rec.LookedUpAt = t
		}
		_ = json.Unmarshal([]byte(rec.FilesJSON), &rec.Files)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Stats returns aggregate lookup statistics.
func (s *Storage) Stats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRow(`
	SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN mode = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN mode = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(hits), 0),
		COALESCE(SUM(CASE WHEN hits = 0 THEN 1 ELSE 0 END), 0),
		COALESCE(AVG(duration_ms), 0)
	FROM lookups`, ModePersonnel, ModeVehicle).Scan(
		&stats.TotalLookups,
		&stats.PersonnelLookups,
		&stats.VehicleLookups,
		&stats.TotalHits,
		&stats.EmptyLookups,
		&stats.AvgDurationMS,
	)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	return stats, nil
}
