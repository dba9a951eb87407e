package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ActiveTimer is the single in-progress work interval. The table is
// constrained to one row; SaveActiveTimer upserts it.
type ActiveTimer struct {
	ProjectID    string
	StartTime    time.Time
	Description  string
	WarningShown bool
}

// GetActiveTimer returns the running timer, or nil when none is running.
func (db *DB) GetActiveTimer() (*ActiveTimer, error) {
	var t ActiveTimer
	var startStr string
	err := db.QueryRow(
		`SELECT project_id, start_time, description, warning_shown FROM active_timer WHERE id = 1`,
	).Scan(&t.ProjectID, &startStr, &t.Description, &t.WarningShown)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active timer: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing timer start time: %w", err)
	}
	t.StartTime = parsed
	return &t, nil
}

func (db *DB) SaveActiveTimer(t *ActiveTimer) error {
	_, err := db.Exec(
		`INSERT INTO active_timer (id, project_id, start_time, description, warning_shown)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			start_time = excluded.start_time,
			description = excluded.description,
			warning_shown = excluded.warning_shown`,
		t.ProjectID, t.StartTime.UTC().Format(time.RFC3339), t.Description, t.WarningShown,
	)
	if err != nil {
		return fmt.Errorf("saving active timer: %w", err)
	}
	return nil
}

func (db *DB) ClearActiveTimer() error {
	if _, err := db.Exec(`DELETE FROM active_timer WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing active timer: %w", err)
	}
	return nil
}
