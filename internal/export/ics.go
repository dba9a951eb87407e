package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/emersion/go-ical"
)

// WriteICS writes one VEVENT per logged interval so a timesheet can be
// laid over a calendar. Entries without intervals carry no wall-clock
// placement and are skipped.
func WriteICS(w io.Writer, d Data) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, "-//tidsrapportering//tids//EN")
	cal.Props.SetText(ical.PropVersion, "2.0")

	now := time.Now().UTC()

	for _, e := range d.Entries {
		name := projectName(d.Projects, e.ProjectID)

		for i, iv := range e.Intervals {
			start, end, err := localTimes(e.Date, iv.Start, iv.End)
			if err != nil {
				return err
			}

			summaryText := name
			if e.Description != "" {
				summaryText = name + ": " + e.Description
			}

			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%d@tids", e.ID, i))
			event.Props.SetDateTime(ical.PropDateTimeStamp, now)
			event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
			event.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
			event.Props.SetText(ical.PropSummary, summaryText)

			cal.Children = append(cal.Children, event.Component)
		}
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}
