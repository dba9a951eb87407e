// Package export writes entry ranges as CSV or iCalendar. Rounded
// figures come from the summary engine's bucket pass, so exported totals
// always match the on-screen ones.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/VisionInno/tidsrapportering/internal/store"
	"github.com/VisionInno/tidsrapportering/internal/summary"
)

// Data is a date-range-filtered snapshot handed to the writers.
type Data struct {
	Entries  []store.Entry
	Projects map[string]store.Project
	From, To string // YYYY-MM-DD, inclusive
}

func projectName(projects map[string]store.Project, id string) string {
	if p, ok := projects[id]; ok {
		return p.Name
	}
	return summary.UnknownProjectName
}

func entryRate(e store.Entry, projects map[string]store.Project) float64 {
	if e.HourlyRate != nil {
		return *e.HourlyRate
	}
	if p, ok := projects[e.ProjectID]; ok && p.DefaultHourlyRate != nil {
		return *p.DefaultHourlyRate
	}
	return 0
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

// Filename suggests an export file name for the range, e.g.
// "timesheet_2024-01-01_2024-01-31.csv".
func Filename(d Data, format string) string {
	return fmt.Sprintf("timesheet_%s_%s.%s", d.From, d.To, format)
}

// localTimes converts an entry date plus an interval into concrete start
// and end instants in the local zone. An interval that wraps midnight
// ends on the following day.
func localTimes(date, startClock, endClock string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing entry date: %w", err)
	}
	start, err := time.ParseInLocation("15:04", startClock, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing interval start: %w", err)
	}
	end, err := time.ParseInLocation("15:04", endClock, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing interval end: %w", err)
	}

	startAt := day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute)
	endAt := day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute)
	if endAt.Before(startAt) {
		endAt = endAt.AddDate(0, 0, 1)
	}
	return startAt, endAt, nil
}

// Write renders d in the named format ("csv" or "ics") to w.
func Write(w io.Writer, d Data, format string) error {
	switch format {
	case "csv":
		return WriteCSV(w, d)
	case "ics":
		return WriteICS(w, d)
	default:
		return fmt.Errorf("unknown export format %q (want csv or ics)", format)
	}
}
