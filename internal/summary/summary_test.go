package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisionInno/tidsrapportering/internal/store"
	"github.com/VisionInno/tidsrapportering/internal/timecalc"
)

func rate(v float64) *float64 { return &v }

func intervalEntry(projectID, date string, intervals ...timecalc.Interval) store.Entry {
	return store.Entry{
		ProjectID: projectID,
		Date:      date,
		Hours:     float64(timecalc.TotalMinutes(intervals)) / 60,
		Intervals: intervals,
	}
}

func TestRoundUpToQuarter(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{1, 15},
		{7, 15},
		{14, 15},
		{15, 15},
		{16, 30},
		{30, 30},
		{59, 60},
		{480, 480},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundUpToQuarter(tt.in), "RoundUpToQuarter(%d)", tt.in)
	}
}

func TestRoundUpToQuarterProperties(t *testing.T) {
	for m := 0; m <= 1500; m++ {
		r := RoundUpToQuarter(m)
		assert.GreaterOrEqual(t, r, m)
		assert.Less(t, r-m, 15)
		assert.Equal(t, r, RoundUpToQuarter(r), "idempotent at %d", m)
	}
}

func TestQuarterHours(t *testing.T) {
	assert.Equal(t, 0.0, QuarterHours(0))
	assert.Equal(t, 0.25, QuarterHours(7))
	assert.Equal(t, 0.25, QuarterHours(15))
	assert.Equal(t, 0.5, QuarterHours(16))
	assert.Equal(t, 8.0, QuarterHours(480))
}

func TestEntryExactMinutes(t *testing.T) {
	withIntervals := intervalEntry("p1", "2024-01-01",
		timecalc.Interval{Start: "08:00", End: "08:07"},
		timecalc.Interval{Start: "09:00", End: "09:10"},
	)
	assert.Equal(t, 17, EntryExactMinutes(withIntervals))

	manual := store.Entry{ProjectID: "p1", Date: "2024-01-01", Hours: 1.5}
	assert.Equal(t, 90, EntryExactMinutes(manual))
}

func TestCalculateBucketsBeforeRounding(t *testing.T) {
	// Two 7-minute stints on the same project and day: summed first they
	// are 14 minutes and bill as one quarter hour, not two.
	entries := []store.Entry{
		intervalEntry("p1", "2024-01-01", timecalc.Interval{Start: "08:00", End: "08:07"}),
		intervalEntry("p1", "2024-01-01", timecalc.Interval{Start: "09:00", End: "09:07"}),
	}
	projects := map[string]store.Project{
		"p1": {ID: "p1", Name: "Website", DefaultHourlyRate: rate(100)},
	}

	totals := Calculate(entries, projects)

	assert.Equal(t, 0.25, totals.TotalHours)
	assert.Equal(t, 0.25, totals.HoursByProject["p1"])
	assert.Equal(t, 0.25, totals.HoursByDate["2024-01-01"])
	assert.Equal(t, 25.0, totals.TotalBillable)
}

func TestCalculateSeparateBuckets(t *testing.T) {
	// Different project or different date means a separate rounding bucket.
	entries := []store.Entry{
		intervalEntry("p1", "2024-01-01", timecalc.Interval{Start: "08:00", End: "08:07"}),
		intervalEntry("p2", "2024-01-01", timecalc.Interval{Start: "08:00", End: "08:07"}),
		intervalEntry("p1", "2024-01-02", timecalc.Interval{Start: "08:00", End: "08:07"}),
	}

	totals := Calculate(entries, nil)

	assert.Equal(t, 0.75, totals.TotalHours)
	assert.Equal(t, 0.5, totals.HoursByProject["p1"])
	assert.Equal(t, 0.25, totals.HoursByProject["p2"])
	assert.Equal(t, 0.5, totals.HoursByDate["2024-01-01"])
	assert.Equal(t, 0.25, totals.HoursByDate["2024-01-02"])
}

func TestCalculateManualHoursEntry(t *testing.T) {
	entries := []store.Entry{
		{ProjectID: "p1", Date: "2024-01-01", Hours: 1.1}, // 66 minutes
	}
	totals := Calculate(entries, nil)
	assert.Equal(t, 1.25, totals.TotalHours)
}

func TestCalculateEmpty(t *testing.T) {
	totals := Calculate(nil, nil)

	assert.Zero(t, totals.TotalHours)
	assert.Zero(t, totals.TotalBillable)
	assert.NotNil(t, totals.HoursByProject)
	assert.NotNil(t, totals.HoursByDate)
	assert.Empty(t, totals.HoursByProject)
	assert.Empty(t, totals.HoursByDate)
}

func TestCalculateMissingProject(t *testing.T) {
	entries := []store.Entry{
		intervalEntry("ghost", "2024-01-01", timecalc.Interval{Start: "08:00", End: "09:00"}),
	}
	totals := Calculate(entries, map[string]store.Project{})

	assert.Equal(t, 1.0, totals.TotalHours)
	assert.Equal(t, 1.0, totals.HoursByProject["ghost"])
	assert.Zero(t, totals.TotalBillable)
}

func TestCalculateZeroMinuteBucketKept(t *testing.T) {
	entries := []store.Entry{
		intervalEntry("p1", "2024-01-01", timecalc.Interval{Start: "08:00", End: "08:00"}),
	}
	totals := Calculate(entries, nil)

	hours, ok := totals.HoursByProject["p1"]
	require.True(t, ok, "zero-minute bucket should stay in the mapping")
	assert.Zero(t, hours)
	assert.Zero(t, totals.TotalHours)
}

func TestCalculateGrandTotalInvariant(t *testing.T) {
	entries := []store.Entry{
		intervalEntry("p1", "2024-01-01", timecalc.Interval{Start: "08:00", End: "11:23"}),
		intervalEntry("p2", "2024-01-01", timecalc.Interval{Start: "13:00", End: "13:05"}),
		intervalEntry("p1", "2024-01-02", timecalc.Interval{Start: "23:00", End: "01:00"}),
		{ProjectID: "p3", Date: "2024-01-03", Hours: 2.4},
		intervalEntry("p2", "2024-01-03", timecalc.Interval{Start: "08:00", End: "08:52"}),
	}

	totals := Calculate(entries, nil)

	var byProject, byDate float64
	for _, h := range totals.HoursByProject {
		byProject += h
	}
	for _, h := range totals.HoursByDate {
		byDate += h
	}
	assert.InDelta(t, totals.TotalHours, byProject, 1e-9)
	assert.InDelta(t, totals.TotalHours, byDate, 1e-9)
}

func TestCalculateMidnightWrap(t *testing.T) {
	entries := []store.Entry{
		intervalEntry("p1", "2024-01-01", timecalc.Interval{Start: "23:00", End: "01:00"}),
	}
	totals := Calculate(entries, nil)
	assert.Equal(t, 2.0, totals.TotalHours)
}

func TestInvoiceLines(t *testing.T) {
	projects := map[string]store.Project{
		"p1": {ID: "p1", Name: "Website", DefaultHourlyRate: rate(100)},
		"p2": {ID: "p2", Name: "App"},
	}
	entries := []store.Entry{
		intervalEntry("p1", "2024-01-02", timecalc.Interval{Start: "08:00", End: "08:07"}),
		intervalEntry("p1", "2024-01-01", timecalc.Interval{Start: "08:00", End: "09:00"}),
		intervalEntry("p2", "2024-01-01", timecalc.Interval{Start: "10:00", End: "10:30"}),
		intervalEntry("ghost", "2024-01-01", timecalc.Interval{Start: "11:00", End: "11:30"}),
	}

	lines := InvoiceLines(entries, projects)
	require.Len(t, lines, 4)

	// Sorted by date, then project name.
	assert.Equal(t, []string{"App", "Website", "unknown", "Website"}, []string{
		lines[0].ProjectName, lines[1].ProjectName, lines[2].ProjectName, lines[3].ProjectName,
	})
	assert.Equal(t, "2024-01-02", lines[3].Date)

	assert.Equal(t, 1.0, lines[1].Hours)
	assert.Equal(t, 100.0, lines[1].Rate)
	assert.Equal(t, 100.0, lines[1].Amount)
	assert.Zero(t, lines[2].Rate)

	var sum float64
	for _, l := range lines {
		sum += l.Amount
	}
	totals := Calculate(entries, projects)
	assert.InDelta(t, totals.TotalBillable, sum, 1e-9)
}
