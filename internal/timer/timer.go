// Package timer owns the active-timer lifecycle: at most one timer runs
// at a time, starting a new one stops the old one, and stopping produces
// a single-interval entry with exact (unrounded) hours.
package timer

import (
	"fmt"
	"time"

	"github.com/VisionInno/tidsrapportering/internal/config"
	"github.com/VisionInno/tidsrapportering/internal/store"
	"github.com/VisionInno/tidsrapportering/internal/timecalc"
)

const autoStopMarker = "[auto-stopped after %dh]"

type Service struct {
	db  *store.DB
	cfg *config.Config
	now func() time.Time
}

func New(db *store.DB, cfg *config.Config) *Service {
	return &Service{db: db, cfg: cfg, now: time.Now}
}

// Start begins tracking time on a project. A timer already running is
// stopped first and its entry is returned, so no work is lost when the
// user forgets to stop.
func (s *Service) Start(projectID, description string) (*store.Entry, error) {
	project, err := s.db.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s not found", projectID)
	}

	var stopped *store.Entry
	current, err := s.db.GetActiveTimer()
	if err != nil {
		return nil, err
	}
	if current != nil {
		stopped, err = s.stopTimer(current, false)
		if err != nil {
			return nil, fmt.Errorf("stopping previous timer: %w", err)
		}
	}

	t := &store.ActiveTimer{
		ProjectID:   projectID,
		StartTime:   s.now(),
		Description: description,
	}
	if err := s.db.SaveActiveTimer(t); err != nil {
		return nil, err
	}
	return stopped, nil
}

// Stop ends the running timer and creates its entry.
func (s *Service) Stop() (*store.Entry, error) {
	current, err := s.db.GetActiveTimer()
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("no timer is running")
	}
	return s.stopTimer(current, false)
}

// Status returns the running timer and its elapsed duration, or nil when
// no timer is running.
func (s *Service) Status() (*store.ActiveTimer, time.Duration, error) {
	current, err := s.db.GetActiveTimer()
	if err != nil {
		return nil, 0, err
	}
	if current == nil {
		return nil, 0, nil
	}
	return current, s.now().Sub(current.StartTime), nil
}

// SetDescription updates the running timer's description in place.
func (s *Service) SetDescription(description string) error {
	current, err := s.db.GetActiveTimer()
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("no timer is running")
	}
	current.Description = description
	return s.db.SaveActiveTimer(current)
}

// Check enforces the long-running-timer thresholds: after the warning
// threshold it marks the timer warned (once) and reports it; after the
// auto-stop threshold it stops the timer and returns the created entry.
func (s *Service) Check() (warned bool, stopped *store.Entry, err error) {
	current, err := s.db.GetActiveTimer()
	if err != nil {
		return false, nil, err
	}
	if current == nil {
		return false, nil, nil
	}

	elapsed := s.now().Sub(current.StartTime)

	if elapsed >= time.Duration(s.cfg.Timer.AutoStopHours)*time.Hour {
		entry, err := s.stopTimer(current, true)
		if err != nil {
			return false, nil, err
		}
		return false, entry, nil
	}

	if elapsed >= time.Duration(s.cfg.Timer.WarnAfterHours)*time.Hour && !current.WarningShown {
		current.WarningShown = true
		if err := s.db.SaveActiveTimer(current); err != nil {
			return false, nil, err
		}
		return true, nil, nil
	}

	return false, nil, nil
}

// stopTimer converts the timer into a single-interval entry. Hours are
// the exact interval minutes divided by 60; rounding belongs to the
// summary engine, not here.
func (s *Service) stopTimer(t *store.ActiveTimer, autoStopped bool) (*store.Entry, error) {
	start := t.StartTime.Local()
	end := s.now().Local()

	interval := timecalc.Interval{
		Start: timecalc.ClockOf(start),
		End:   timecalc.ClockOf(end),
	}
	minutes := interval.Minutes()

	description := t.Description
	if autoStopped {
		marker := fmt.Sprintf(autoStopMarker, s.cfg.Timer.AutoStopHours)
		if description != "" {
			description += " " + marker
		} else {
			description = marker
		}
	}

	entry := &store.Entry{
		Date:        timecalc.DateOf(start),
		ProjectID:   t.ProjectID,
		Description: description,
		Hours:       float64(minutes) / 60,
		Billable:    true,
		Intervals:   []timecalc.Interval{interval},
	}

	if err := s.db.InsertEntry(entry); err != nil {
		return nil, fmt.Errorf("saving timer entry: %w", err)
	}
	if err := s.db.ClearActiveTimer(); err != nil {
		return nil, err
	}
	return entry, nil
}
