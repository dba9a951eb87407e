// Package timecalc parses and measures clock-time intervals. All math is
// exact integer minutes; rounding policy lives in the summary package.
package timecalc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Interval is one contiguous span of work within a single day, with
// endpoints as 24-hour "HH:mm" wall-clock strings. An end before the
// start means the span wraps past midnight.
type Interval struct {
	Start string
	End   string
}

var clockPattern = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)

// ParseClock parses "H:MM" or "HH:MM" into a zero-padded "HH:mm" string.
// A dot works as separator too, so "12.51" equals "12:51". The minute
// group must be two digits. Returns false for anything else.
func ParseClock(text string) (string, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), true
}

// ParseInterval parses "12:51-13:12" (or with dots) into an Interval.
func ParseInterval(text string) (Interval, bool) {
	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return Interval{}, false
	}
	start, ok := ParseClock(parts[0])
	if !ok {
		return Interval{}, false
	}
	end, ok := ParseClock(parts[1])
	if !ok {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// ParseIntervalList parses a comma-separated list of intervals like
// "08:00-09:30, 12.15-12.45". Segments that do not parse are dropped
// instead of failing the whole input; the raw text of every dropped
// segment is returned so callers can show what was ignored.
func ParseIntervalList(text string) ([]Interval, []string) {
	var intervals []Interval
	var dropped []string
	for _, seg := range strings.Split(text, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		iv, ok := ParseInterval(seg)
		if !ok {
			dropped = append(dropped, seg)
			continue
		}
		intervals = append(intervals, iv)
	}
	return intervals, dropped
}

func clockMinutes(clock string) int {
	h, _ := strconv.Atoi(clock[:2])
	m, _ := strconv.Atoi(clock[3:])
	return h*60 + m
}

// IntervalMinutes returns the exact elapsed minutes between two "HH:mm"
// endpoints. An end before the start crosses midnight. Never negative,
// never rounded.
func IntervalMinutes(start, end string) int {
	s := clockMinutes(start)
	e := clockMinutes(end)
	if e >= s {
		return e - s
	}
	return (24*60 - s) + e
}

// Minutes returns the exact elapsed minutes of the interval.
func (iv Interval) Minutes() int {
	return IntervalMinutes(iv.Start, iv.End)
}

// TotalMinutes sums the exact minutes of all intervals; 0 for an empty list.
func TotalMinutes(intervals []Interval) int {
	total := 0
	for _, iv := range intervals {
		total += iv.Minutes()
	}
	return total
}

// FormatInterval renders an interval as "HH:mm-HH:mm", the inverse of
// ParseInterval modulo separator normalization.
func FormatInterval(iv Interval) string {
	return iv.Start + "-" + iv.End
}

// FormatIntervals renders a list as "HH:mm-HH:mm, HH:mm-HH:mm".
func FormatIntervals(intervals []Interval) string {
	parts := make([]string, len(intervals))
	for i, iv := range intervals {
		parts[i] = FormatInterval(iv)
	}
	return strings.Join(parts, ", ")
}

// FormatMinutes renders exact minutes as "2h 14m" or "45m".
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// ClockOf formats the wall-clock part of t as "HH:mm".
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}

// DateOf formats the calendar date of t as "YYYY-MM-DD".
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekRange returns the Monday 00:00:00 and Sunday 23:59:59 of the ISO
// week containing t, in t's location.
func WeekRange(t time.Time) (time.Time, time.Time) {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday counts as the last day of the week
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
	sunday := monday.AddDate(0, 0, 6)
	sunday = time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, t.Location())
	return monday, sunday
}
