package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver
)

// sqliteSchemaDDL defines the events table for the SQLite backend.
const sqliteSchemaDDL = `
CREATE TABLE IF NOT EXISTS events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    event_id TEXT NOT NULL UNIQUE,
    timestamp TEXT NOT NULL,
    source TEXT NOT NULL,
    action TEXT NOT NULL,
    task_id INTEGER NOT NULL DEFAULT 0,
    subject TEXT NOT NULL DEFAULT '',
    path TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_events_action ON events(action);
`

const sqliteSelect = `SELECT event_id, timestamp, source, action, task_id, subject, path FROM events`

// SQLiteBackend implements Queryable on a local SQLite file in WAL mode.
type SQLiteBackend struct {
	// DBPath is the absolute path to the SQLite database file.
	DBPath string
}

// NewSQLiteBackend creates the database (and parent directories) if needed
// and ensures the schema exists.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	backend := &SQLiteBackend{DBPath: dbPath}
	if err := backend.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return backend, nil
}

// connect opens a connection with WAL journaling enabled.
func (b *SQLiteBackend) connect() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(b.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", b.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	return db, nil
}

func (b *SQLiteBackend) ensureSchema() error {
	db, err := b.connect()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(sqliteSchemaDDL); err != nil {
		return fmt.Errorf("failed to execute schema DDL: %w", err)
	}
	return nil
}

// Load returns all events in insertion order.
func (b *SQLiteBackend) Load() ([]Event, error) {
	return b.query(sqliteSelect + ` ORDER BY seq`)
}

// EventsByAction returns events with the given action in insertion order.
func (b *SQLiteBackend) EventsByAction(action string) ([]Event, error) {
	return b.query(sqliteSelect+` WHERE action = ? ORDER BY seq`, action)
}

// Append inserts e.
func (b *SQLiteBackend) Append(e Event) error {
	db, err := b.connect()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	_, err = db.Exec(
		`INSERT INTO events (event_id, timestamp, source, action, task_id, subject, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp, e.Source, e.Action, int64(e.TaskID), e.Subject, e.Path,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) query(q string, args ...any) ([]Event, error) {
	db, err := b.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]Event, 0)
	for rows.Next() {
		var e Event
		var taskID int64
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Source, &e.Action, &taskID, &e.Subject, &e.Path); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.TaskID = uint64(taskID)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}
