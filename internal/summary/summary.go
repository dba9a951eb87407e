// Package summary converts exact minutes into billable quarter-hours.
// Rounding happens exactly once per (project, date) bucket; every view
// that shows a rounded figure derives it from the same bucket pass so
// summaries, invoices and exports can never disagree.
package summary

import (
	"math"
	"sort"

	"github.com/VisionInno/tidsrapportering/internal/store"
	"github.com/VisionInno/tidsrapportering/internal/timecalc"
)

// RoundUpToQuarter rounds minutes up to the next quarter-hour boundary.
// 0 stays 0; 1 becomes 15; 15 stays 15; 16 becomes 30.
func RoundUpToQuarter(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return ((minutes + 14) / 15) * 15
}

// QuarterHours converts exact minutes to hours rounded up to the nearest
// quarter hour. The result is always a multiple of 0.25.
func QuarterHours(minutes int) float64 {
	return float64(RoundUpToQuarter(minutes)) / 60
}

// EntryExactMinutes returns an entry's unrounded minute total: the sum of
// its intervals when it has any, otherwise the manually entered hours.
// This is the per-entry display figure; totals recompute it inside the
// bucket pass and never sum it after rounding.
func EntryExactMinutes(e store.Entry) int {
	if len(e.Intervals) > 0 {
		return timecalc.TotalMinutes(e.Intervals)
	}
	return int(math.Round(e.Hours * 60))
}

// Totals is one consistent rounded view over a set of entries.
type Totals struct {
	TotalHours     float64
	TotalBillable  float64
	HoursByProject map[string]float64
	HoursByDate    map[string]float64
}

type bucketKey struct {
	projectID string
	date      string
}

func bucketMinutes(entries []store.Entry) map[bucketKey]int {
	buckets := make(map[bucketKey]int)
	for _, e := range entries {
		buckets[bucketKey{projectID: e.ProjectID, date: e.Date}] += EntryExactMinutes(e)
	}
	return buckets
}

// Calculate groups entries by (project, date), sums the exact minutes of
// each bucket and rounds each bucket up to the nearest quarter hour
// exactly once. Summing first matters: two 7-minute stints on the same
// project and day bill as one quarter hour, not two. A project missing
// from the lookup still contributes hours but bills at rate 0.
func Calculate(entries []store.Entry, projects map[string]store.Project) Totals {
	t := Totals{
		HoursByProject: make(map[string]float64),
		HoursByDate:    make(map[string]float64),
	}

	for key, minutes := range bucketMinutes(entries) {
		hours := QuarterHours(minutes)
		t.TotalHours += hours
		t.HoursByProject[key.projectID] += hours
		t.HoursByDate[key.date] += hours

		if p, ok := projects[key.projectID]; ok && p.DefaultHourlyRate != nil {
			t.TotalBillable += hours * *p.DefaultHourlyRate
		}
	}

	return t
}

// Line is one invoice line item: a single (project, date) bucket priced
// at the project's default hourly rate.
type Line struct {
	Date        string
	ProjectID   string
	ProjectName string
	Hours       float64
	Rate        float64
	Amount      float64
}

// UnknownProjectName labels entries whose project is missing from the
// lookup; they bill at rate 0.
const UnknownProjectName = "unknown"

// InvoiceLines renders the bucket pass as line items sorted by date then
// project name. The amounts sum to the TotalBillable that Calculate
// reports for the same input.
func InvoiceLines(entries []store.Entry, projects map[string]store.Project) []Line {
	buckets := bucketMinutes(entries)

	lines := make([]Line, 0, len(buckets))
	for key, minutes := range buckets {
		line := Line{
			Date:        key.date,
			ProjectID:   key.projectID,
			ProjectName: UnknownProjectName,
			Hours:       QuarterHours(minutes),
		}
		if p, ok := projects[key.projectID]; ok {
			line.ProjectName = p.Name
			if p.DefaultHourlyRate != nil {
				line.Rate = *p.DefaultHourlyRate
			}
		}
		line.Amount = line.Hours * line.Rate
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Date != lines[j].Date {
			return lines[i].Date < lines[j].Date
		}
		return lines[i].ProjectName < lines[j].ProjectName
	})
	return lines
}
