package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// DefaultPath returns the database location under the user config dir,
// honoring the TIDS_DB_PATH override.
func DefaultPath() (string, error) {
	if p := os.Getenv("TIDS_DB_PATH"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tids", "tids.db"), nil
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	store := &DB{db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			client TEXT,
			color TEXT NOT NULL,
			default_hourly_rate REAL,
			active INTEGER DEFAULT 1,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS time_entries (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			project_id TEXT NOT NULL,
			description TEXT DEFAULT '',
			hours REAL NOT NULL,
			billable INTEGER DEFAULT 1,
			hourly_rate REAL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		)`,
		`CREATE TABLE IF NOT EXISTS time_intervals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_id TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			FOREIGN KEY (entry_id) REFERENCES time_entries(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS active_timer (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			project_id TEXT,
			start_time TEXT,
			description TEXT DEFAULT '',
			warning_shown INTEGER DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_date ON time_entries(date)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_project ON time_entries(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_intervals_entry ON time_intervals(entry_id)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	return nil
}
