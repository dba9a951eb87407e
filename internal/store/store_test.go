package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisionInno/tidsrapportering/internal/store"
	"github.com/VisionInno/tidsrapportering/internal/timecalc"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func rate(v float64) *float64 { return &v }

func TestProjectRoundTrip(t *testing.T) {
	db := testDB(t)

	p := &store.Project{Name: "Website", Client: "Acme", DefaultHourlyRate: rate(950), Active: true}
	require.NoError(t, db.InsertProject(p))
	require.NotEmpty(t, p.ID, "insert should assign an id")
	assert.Equal(t, "#6b7280", p.Color, "missing color gets the default")

	got, err := db.GetProject(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Website", got.Name)
	assert.Equal(t, "Acme", got.Client)
	require.NotNil(t, got.DefaultHourlyRate)
	assert.Equal(t, 950.0, *got.DefaultHourlyRate)
	assert.True(t, got.Active)

	byName, err := db.FindProjectByName("Website")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, p.ID, byName.ID)

	missing, err := db.GetProject("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListProjectsFiltersArchived(t *testing.T) {
	db := testDB(t)

	active := &store.Project{Name: "Active", Active: true}
	archived := &store.Project{Name: "Old", Active: false}
	require.NoError(t, db.InsertProject(active))
	require.NoError(t, db.InsertProject(archived))

	got, err := db.ListProjects(false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Active", got[0].Name)

	all, err := db.ListProjects(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	m, err := db.ProjectMap()
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, "Old", m[archived.ID].Name)
}

func TestEntryRoundTrip(t *testing.T) {
	db := testDB(t)

	p := &store.Project{Name: "Website", Active: true}
	require.NoError(t, db.InsertProject(p))

	e := &store.Entry{
		Date:        "2024-01-01",
		ProjectID:   p.ID,
		Description: "rounding engine",
		Hours:       1.5,
		Billable:    true,
		HourlyRate:  rate(800),
		Intervals: []timecalc.Interval{
			{Start: "08:00", End: "09:00"},
			{Start: "13:00", End: "13:30"},
		},
	}
	require.NoError(t, db.InsertEntry(e))
	require.NotEmpty(t, e.ID)

	got, err := db.GetEntry(e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-01-01", got.Date)
	assert.Equal(t, "rounding engine", got.Description)
	assert.Equal(t, 1.5, got.Hours)
	assert.True(t, got.Billable)
	require.NotNil(t, got.HourlyRate)
	assert.Equal(t, 800.0, *got.HourlyRate)
	require.Len(t, got.Intervals, 2)
	assert.Equal(t, "08:00", got.Intervals[0].Start)
	assert.Equal(t, "13:30", got.Intervals[1].End)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUpdateEntryReplacesIntervals(t *testing.T) {
	db := testDB(t)

	p := &store.Project{Name: "Website", Active: true}
	require.NoError(t, db.InsertProject(p))

	e := &store.Entry{
		Date:      "2024-01-01",
		ProjectID: p.ID,
		Hours:     1,
		Intervals: []timecalc.Interval{{Start: "08:00", End: "09:00"}},
	}
	require.NoError(t, db.InsertEntry(e))

	e.Intervals = []timecalc.Interval{{Start: "10:00", End: "10:45"}}
	e.Hours = 0.75
	require.NoError(t, db.UpdateEntry(e))

	got, err := db.GetEntry(e.ID)
	require.NoError(t, err)
	require.Len(t, got.Intervals, 1)
	assert.Equal(t, "10:00", got.Intervals[0].Start)
	assert.Equal(t, 0.75, got.Hours)
}

func TestDeleteEntryCascadesIntervals(t *testing.T) {
	db := testDB(t)

	p := &store.Project{Name: "Website", Active: true}
	require.NoError(t, db.InsertProject(p))

	e := &store.Entry{
		Date:      "2024-01-01",
		ProjectID: p.ID,
		Hours:     1,
		Intervals: []timecalc.Interval{{Start: "08:00", End: "09:00"}},
	}
	require.NoError(t, db.InsertEntry(e))
	require.NoError(t, db.DeleteEntry(e.ID))

	got, err := db.GetEntry(e.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM time_intervals`).Scan(&count))
	assert.Zero(t, count, "interval rows should cascade on delete")

	assert.Error(t, db.DeleteEntry("nope"))
}

func TestEntriesBetween(t *testing.T) {
	db := testDB(t)

	p := &store.Project{Name: "Website", Active: true}
	require.NoError(t, db.InsertProject(p))

	for _, date := range []string{"2024-01-01", "2024-01-05", "2024-02-01"} {
		require.NoError(t, db.InsertEntry(&store.Entry{Date: date, ProjectID: p.ID, Hours: 1}))
	}

	got, err := db.EntriesBetween("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, "2024-01-05", got[1].Date)

	day, err := db.EntriesOn("2024-02-01")
	require.NoError(t, err)
	assert.Len(t, day, 1)
}

func TestActiveTimerSingleRow(t *testing.T) {
	db := testDB(t)

	got, err := db.GetActiveTimer()
	require.NoError(t, err)
	assert.Nil(t, got)

	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	require.NoError(t, db.SaveActiveTimer(&store.ActiveTimer{
		ProjectID: "p1",
		StartTime: start,
	}))

	// Saving again replaces the single row instead of adding another.
	require.NoError(t, db.SaveActiveTimer(&store.ActiveTimer{
		ProjectID:    "p2",
		StartTime:    start,
		Description:  "later",
		WarningShown: true,
	}))

	got, err = db.GetActiveTimer()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p2", got.ProjectID)
	assert.Equal(t, "later", got.Description)
	assert.True(t, got.WarningShown)
	assert.True(t, got.StartTime.Equal(start))

	require.NoError(t, db.ClearActiveTimer())
	got, err = db.GetActiveTimer()
	require.NoError(t, err)
	assert.Nil(t, got)
}
