package timecalc_test

import (
	"testing"
	"time"

	"github.com/VisionInno/tidsrapportering/internal/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12:51", "12:51", true},
		{"12.51", "12:51", true},
		{"9:30", "09:30", true},
		{"0:00", "00:00", true},
		{"23:59", "23:59", true},
		{" 08:15 ", "08:15", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"9:5", "", false},
		{"930", "", false},
		{"12:51:00", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := timecalc.ParseClock(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseClock(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseInterval(t *testing.T) {
	iv, ok := timecalc.ParseInterval("12.51-13.12")
	if !ok {
		t.Fatal("ParseInterval(12.51-13.12) failed")
	}
	if iv.Start != "12:51" || iv.End != "13:12" {
		t.Errorf("ParseInterval = %+v, want 12:51-13:12", iv)
	}

	for _, bad := range []string{"", "12:51", "12:51-13:12-14:00", "12:51-", "-13:12", "25:00-26:00"} {
		if _, ok := timecalc.ParseInterval(bad); ok {
			t.Errorf("ParseInterval(%q) succeeded, want failure", bad)
		}
	}
}

func TestParseIntervalRoundTrip(t *testing.T) {
	const s = "08:00-17:00"
	iv, ok := timecalc.ParseInterval(s)
	if !ok {
		t.Fatalf("ParseInterval(%q) failed", s)
	}
	if got := timecalc.FormatInterval(iv); got != s {
		t.Errorf("FormatInterval(ParseInterval(%q)) = %q", s, got)
	}
}

func TestParseIntervalList(t *testing.T) {
	intervals, dropped := timecalc.ParseIntervalList("08:00-09:30, nonsense, 12.15-12.45,")
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(intervals))
	}
	if intervals[0].Start != "08:00" || intervals[1].End != "12:45" {
		t.Errorf("unexpected intervals: %+v", intervals)
	}
	if len(dropped) != 1 || dropped[0] != "nonsense" {
		t.Errorf("dropped = %v, want [nonsense]", dropped)
	}

	intervals, dropped = timecalc.ParseIntervalList("")
	if len(intervals) != 0 || len(dropped) != 0 {
		t.Errorf("empty input: got %v / %v", intervals, dropped)
	}
}

func TestIntervalMinutes(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"09:00", "17:00", 480},
		{"23:00", "01:00", 120}, // crosses midnight
		{"08:00", "08:00", 0},
		{"08:00", "08:07", 7},
		{"00:00", "23:59", 1439},
	}
	for _, tt := range tests {
		if got := timecalc.IntervalMinutes(tt.start, tt.end); got != tt.want {
			t.Errorf("IntervalMinutes(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestTotalMinutes(t *testing.T) {
	if got := timecalc.TotalMinutes(nil); got != 0 {
		t.Errorf("TotalMinutes(nil) = %d, want 0", got)
	}
	intervals := []timecalc.Interval{
		{Start: "08:00", End: "09:30"},
		{Start: "13:00", End: "13:07"},
	}
	if got := timecalc.TotalMinutes(intervals); got != 97 {
		t.Errorf("TotalMinutes = %d, want 97", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{134, "2h 14m"},
	}
	for _, tt := range tests {
		if got := timecalc.FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday.
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	if got := timecalc.DateOf(monday); got != "2026-02-23" {
		t.Errorf("WeekRange monday = %s, want 2026-02-23", got)
	}
	if got := timecalc.DateOf(sunday); got != "2026-03-01" {
		t.Errorf("WeekRange sunday = %s, want 2026-03-01", got)
	}
}

func TestClockOf(t *testing.T) {
	ts := time.Date(2026, 2, 27, 8, 5, 0, 0, time.UTC)
	if got := timecalc.ClockOf(ts); got != "08:05" {
		t.Errorf("ClockOf = %q, want 08:05", got)
	}
}
