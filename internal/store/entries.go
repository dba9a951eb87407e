package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VisionInno/tidsrapportering/internal/timecalc"
)

// Entry is one logged time entry. Hours caches the exact, unrounded sum
// of the interval durations when Intervals is non-empty; when the list is
// empty (manual entry) Hours is the sole source of truth.
type Entry struct {
	ID          string
	Date        string // YYYY-MM-DD
	ProjectID   string
	Description string
	Hours       float64
	Billable    bool
	HourlyRate  *float64
	Intervals   []timecalc.Interval
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const entryColumns = `id, date, project_id, description, hours, billable, hourly_rate, created_at, updated_at`

// InsertEntry saves the entry and its intervals in one transaction.
// A missing ID is generated; timestamps are set to now.
func (db *DB) InsertEntry(e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO time_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date, e.ProjectID, e.Description, e.Hours, e.Billable, e.HourlyRate,
		e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}

	if err := insertIntervals(tx, e.ID, e.Intervals); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateEntry rewrites the entry row and replaces its interval list.
func (db *DB) UpdateEntry(e *Entry) error {
	e.UpdatedAt = time.Now().UTC()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE time_entries
		 SET date = ?, project_id = ?, description = ?, hours = ?, billable = ?, hourly_rate = ?, updated_at = ?
		 WHERE id = ?`,
		e.Date, e.ProjectID, e.Description, e.Hours, e.Billable, e.HourlyRate,
		e.UpdatedAt.Format(time.RFC3339), e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s not found", e.ID)
	}

	if _, err := tx.Exec(`DELETE FROM time_intervals WHERE entry_id = ?`, e.ID); err != nil {
		return fmt.Errorf("clearing intervals: %w", err)
	}
	if err := insertIntervals(tx, e.ID, e.Intervals); err != nil {
		return err
	}

	return tx.Commit()
}

func insertIntervals(tx *sql.Tx, entryID string, intervals []timecalc.Interval) error {
	for _, iv := range intervals {
		_, err := tx.Exec(
			`INSERT INTO time_intervals (entry_id, start_time, end_time) VALUES (?, ?, ?)`,
			entryID, iv.Start, iv.End,
		)
		if err != nil {
			return fmt.Errorf("inserting interval: %w", err)
		}
	}
	return nil
}

func (db *DB) DeleteEntry(id string) error {
	res, err := db.Exec(`DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s not found", id)
	}
	return nil
}

func (db *DB) GetEntry(id string) (*Entry, error) {
	entries, err := db.queryEntries(
		`SELECT `+entryColumns+` FROM time_entries WHERE id = ?`, id,
	)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// EntriesOn returns the entries for one date, oldest first.
func (db *DB) EntriesOn(date string) ([]Entry, error) {
	return db.queryEntries(
		`SELECT `+entryColumns+` FROM time_entries WHERE date = ? ORDER BY created_at ASC`,
		date,
	)
}

// EntriesBetween returns the entries with from <= date <= to, ordered by
// date then creation time. Dates are YYYY-MM-DD strings, so string
// comparison is chronological.
func (db *DB) EntriesBetween(from, to string) ([]Entry, error) {
	return db.queryEntries(
		`SELECT `+entryColumns+` FROM time_entries WHERE date >= ? AND date <= ? ORDER BY date ASC, created_at ASC`,
		from, to,
	)
}

func (db *DB) queryEntries(query string, args ...any) ([]Entry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var hourlyRate sql.NullFloat64
		var createdStr, updatedStr string

		if err := rows.Scan(
			&e.ID, &e.Date, &e.ProjectID, &e.Description, &e.Hours, &e.Billable,
			&hourlyRate, &createdStr, &updatedStr,
		); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if hourlyRate.Valid {
			rate := hourlyRate.Float64
			e.HourlyRate = &rate
		}
		if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
			e.CreatedAt = t
		}
		if t, err := time.Parse(time.RFC3339, updatedStr); err == nil {
			e.UpdatedAt = t
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		intervals, err := db.entryIntervals(entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Intervals = intervals
	}

	return entries, nil
}

func (db *DB) entryIntervals(entryID string) ([]timecalc.Interval, error) {
	rows, err := db.Query(
		`SELECT start_time, end_time FROM time_intervals WHERE entry_id = ? ORDER BY id ASC`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying intervals: %w", err)
	}
	defer rows.Close()

	var intervals []timecalc.Interval
	for rows.Next() {
		var iv timecalc.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("scanning interval: %w", err)
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}
