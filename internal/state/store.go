// Package state keeps the history of launcher changes in a SQLite database.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// DBFile is the history database file name inside the state directory.
const DBFile = "history.db"

// Action is what happened to a launcher.
type Action string

// Recorded actions
const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionRemoved Action = "removed"
)

// Event is one recorded change to a launcher file.
type Event struct {
	RecordedAt time.Time
	FileName   string
	Action     Action
	Host       string
	// Content is the launcher record after the change, or before a removal.
	Content []byte
	ID      int64
}

// Store manages the SQLite database of launcher events.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at the given path and runs migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close() //nolint:errcheck,gosec // best-effort cleanup on error path
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close() //nolint:errcheck,gosec // best-effort cleanup on error path
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const selectEvents = `
	SELECT id, file_name, action, content, host, recorded_at
	FROM launcher_events`

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (Event, error) {
	var e Event
	var action, recordedAt string

	if err := row.Scan(&e.ID, &e.FileName, &action, &e.Content, &e.Host, &recordedAt); err != nil {
		return Event{}, err
	}
	e.Action = Action(action)

	var err error
	e.RecordedAt, err = parseTime(recordedAt)
	if err != nil {
		return Event{}, fmt.Errorf("parsing recorded_at: %w", err)
	}

	return e, nil
}

// Record stores a new event.
func (s *Store) Record(e Event) error {
	if e.Content == nil {
		e.Content = []byte{}
	}

	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO launcher_events (file_name, action, content, host)
		VALUES (?, ?, ?, ?)
	`, e.FileName, string(e.Action), e.Content, e.Host)
	if err != nil {
		return fmt.Errorf("recording event: %w", err)
	}

	return nil
}

// Latest returns the most recent event for fileName.
// Returns nil if the file has no history.
func (s *Store) Latest(fileName string) (*Event, error) {
	row := s.db.QueryRowContext(context.Background(), selectEvents+`
		WHERE file_name = ?
		ORDER BY id DESC
		LIMIT 1
	`, fileName)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nil means "not found", distinct from error
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest event: %w", err)
	}

	return &e, nil
}

// Recent returns the limit most recent events across all launchers, newest first.
func (s *Store) Recent(limit int) ([]Event, error) {
	return s.query("querying recent events", selectEvents+`
		ORDER BY id DESC
		LIMIT ?
	`, limit)
}

// ForFile returns the limit most recent events for fileName, newest first.
func (s *Store) ForFile(fileName string, limit int) ([]Event, error) {
	return s.query("querying file history", selectEvents+`
		WHERE file_name = ?
		ORDER BY id DESC
		LIMIT ?
	`, fileName, limit)
}

func (s *Store) query(what, q string, args ...any) ([]Event, error) {
	rows, err := s.db.QueryContext(context.Background(), q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck,gosec // defer close is best-effort

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// Prune keeps only the keep most recent events for fileName, deleting older ones.
func (s *Store) Prune(fileName string, keep int) error {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM launcher_events
		WHERE file_name = ?
		AND id NOT IN (
			SELECT id FROM launcher_events
			WHERE file_name = ?
			ORDER BY id DESC
			LIMIT ?
		)
	`, fileName, fileName, keep)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}

	return nil
}

// migrate runs schema migrations.
func (s *Store) migrate() error {
	currentVersion := s.getSchemaVersion()

	migrations := []func(*sql.Tx) error{
		migrateV1,
	}

	ctx := context.Background()
	for i := currentVersion; i < len(migrations); i++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}

		if err := migrations[i](tx); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort on migration failure
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort
			return fmt.Errorf("updating schema version: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort
			return fmt.Errorf("inserting schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}

// getSchemaVersion returns the current schema version, or 0 if the schema_version table doesn't exist.
func (s *Store) getSchemaVersion() int {
	ctx := context.Background()
	var tableName string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&tableName)
	if err != nil {
		return 0
	}

	var version int
	if err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version); err != nil {
		return 0
	}

	return version
}

// parseTime parses a timestamp string from SQLite, trying multiple formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}

// migrateV1 creates the initial schema.
func migrateV1(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS launcher_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			file_name   TEXT NOT NULL,
			action      TEXT NOT NULL CHECK (action IN ('created', 'updated', 'removed')),
			content     BLOB NOT NULL,
			host        TEXT NOT NULL DEFAULT '',
			recorded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_launcher_events_file
			ON launcher_events(file_name, id DESC)`,
	}

	ctx := context.Background()
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	return nil
}
