// Package tui is the interactive entry form. The running total it shows
// while intervals are typed is the exact minute figure, never a rounded
// one; rounded numbers exist only in the summary engine's bucket pass.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VisionInno/tidsrapportering/internal/store"
	"github.com/VisionInno/tidsrapportering/internal/suggest"
	"github.com/VisionInno/tidsrapportering/internal/timecalc"
)

type field int

const (
	fieldDate field = iota
	fieldProject
	fieldDescription
	fieldIntervals
	fieldHours
	fieldBillable
	fieldCount
)

type Form struct {
	projects  []store.Project
	suggester suggest.Provider

	date        textinput.Model
	description textinput.Model
	intervals   textinput.Model
	hours       textinput.Model

	projectCursor int
	billable      bool
	focus         field
	errMsg        string

	editID   string
	editRate *float64
	entry    *store.Entry
}

// NewForm builds an empty form for a new entry on the given date.
func NewForm(projects []store.Project, defaultDate string) *Form {
	f := &Form{projects: projects}

	f.date = newInput("YYYY-MM-DD", 10)
	f.date.SetValue(defaultDate)
	f.description = newInput("What did you work on?", 120)
	f.intervals = newInput("e.g. 08:00-09:30, 12.15-12.45", 120)
	f.hours = newInput("e.g. 1.5 (used when no intervals)", 10)

	f.date.Focus()
	return f
}

// NewEditForm builds a form prefilled from an existing entry; saving
// produces an entry carrying the same id.
func NewEditForm(projects []store.Project, e store.Entry) *Form {
	f := NewForm(projects, e.Date)
	f.editID = e.ID
	f.editRate = e.HourlyRate
	f.description.SetValue(e.Description)
	f.billable = e.Billable

	if len(e.Intervals) > 0 {
		f.intervals.SetValue(timecalc.FormatIntervals(e.Intervals))
	} else {
		f.hours.SetValue(strconv.FormatFloat(e.Hours, 'f', -1, 64))
	}

	for i, p := range projects {
		if p.ID == e.ProjectID {
			f.projectCursor = i
			break
		}
	}
	return f
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

// SetSuggester enables the project-suggestion binding. The form works
// the same without one; Ctrl+G then does nothing.
func (f *Form) SetSuggester(p suggest.Provider) {
	f.suggester = p
}

// Entry returns the saved entry, or nil when the form was canceled.
func (f *Form) Entry() *store.Entry {
	return f.entry
}

func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(suggestResult); ok {
		f.applySuggestion(res)
		return f, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, f.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		f.entry = nil
		return f, tea.Quit

	case "ctrl+g":
		if f.suggester != nil {
			return f, f.suggestCmd()
		}
		return f, nil

	case "tab", "down":
		if f.focus == fieldProject && keyMsg.String() == "down" {
			if f.projectCursor < len(f.projects)-1 {
				f.projectCursor++
			}
			return f, nil
		}
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil

	case "shift+tab", "up":
		if f.focus == fieldProject && keyMsg.String() == "up" {
			if f.projectCursor > 0 {
				f.projectCursor--
			}
			return f, nil
		}
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return f, nil

	case " ":
		if f.focus == fieldBillable {
			f.billable = !f.billable
			return f, nil
		}

	case "enter":
		if err := f.save(); err != nil {
			f.errMsg = err.Error()
			return f, nil
		}
		return f, tea.Quit
	}

	return f, f.updateInputs(msg)
}

func (f *Form) setFocus(target field) {
	f.focus = target
	for _, in := range []*textinput.Model{&f.date, &f.description, &f.intervals, &f.hours} {
		in.Blur()
	}
	switch target {
	case fieldDate:
		f.date.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldIntervals:
		f.intervals.Focus()
	case fieldHours:
		f.hours.Focus()
	}
}

type suggestResult struct {
	match *suggest.Match
	err   error
}

func (f *Form) suggestCmd() tea.Cmd {
	description := strings.TrimSpace(f.description.Value())
	if description == "" {
		return func() tea.Msg {
			return suggestResult{err: fmt.Errorf("enter a description first")}
		}
	}

	suggester := f.suggester
	projects := f.projects
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		match, err := suggester.MatchProject(ctx, description, projects)
		return suggestResult{match: match, err: err}
	}
}

func (f *Form) applySuggestion(res suggestResult) {
	if res.err != nil {
		f.errMsg = "suggest: " + res.err.Error()
		return
	}
	if res.match == nil || res.match.ProjectID == "" {
		f.errMsg = "suggest: no confident match"
		return
	}
	for i, p := range f.projects {
		if p.ID == res.match.ProjectID {
			f.projectCursor = i
			f.errMsg = ""
			return
		}
	}
	f.errMsg = "suggest: unknown project " + res.match.ProjectName
}

func (f *Form) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	f.date, cmd = f.date.Update(msg)
	cmds = append(cmds, cmd)
	f.description, cmd = f.description.Update(msg)
	cmds = append(cmds, cmd)
	f.intervals, cmd = f.intervals.Update(msg)
	cmds = append(cmds, cmd)
	f.hours, cmd = f.hours.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

func (f *Form) save() error {
	if _, err := time.Parse("2006-01-02", f.date.Value()); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	if len(f.projects) == 0 {
		return fmt.Errorf("no active projects — create one first")
	}
	project := f.projects[f.projectCursor]

	entry := &store.Entry{
		ID:          f.editID,
		Date:        f.date.Value(),
		ProjectID:   project.ID,
		Description: strings.TrimSpace(f.description.Value()),
		Billable:    f.billable,
		HourlyRate:  f.editRate,
	}

	if text := strings.TrimSpace(f.intervals.Value()); text != "" {
		intervals, dropped := timecalc.ParseIntervalList(text)
		if len(intervals) == 0 {
			return fmt.Errorf("no valid intervals in %q", text)
		}
		if len(dropped) > 0 {
			return fmt.Errorf("unparseable intervals: %s", strings.Join(dropped, ", "))
		}
		entry.Intervals = intervals
		entry.Hours = float64(timecalc.TotalMinutes(intervals)) / 60
	} else {
		hours, err := strconv.ParseFloat(strings.TrimSpace(f.hours.Value()), 64)
		if err != nil || hours <= 0 {
			return fmt.Errorf("enter intervals or a positive hour count")
		}
		entry.Hours = hours
	}

	f.entry = entry
	return nil
}

func (f *Form) View() string {
	var b strings.Builder

	title := "tids — New entry"
	if f.editID != "" {
		title = "tids — Edit entry"
	}
	b.WriteString(titleStyle.Render(title) + "\n")

	b.WriteString(f.label(fieldDate, "Date") + "\n" + f.date.View() + "\n\n")

	b.WriteString(f.label(fieldProject, "Project") + "\n")
	for i, p := range f.projects {
		cursor := "  "
		name := p.Name
		if i == f.projectCursor {
			cursor = "> "
			name = selectedStyle.Render(name)
		}
		b.WriteString(cursor + name + "\n")
	}
	b.WriteString("\n")

	b.WriteString(f.label(fieldDescription, "Description") + "\n" + f.description.View() + "\n\n")
	b.WriteString(f.label(fieldIntervals, "Intervals") + "\n" + f.intervals.View() + "\n")
	b.WriteString(previewStyle.Render(PreviewLine(f.intervals.Value())) + "\n\n")
	b.WriteString(f.label(fieldHours, "Hours") + "\n" + f.hours.View() + "\n\n")

	check := "[ ]"
	if f.billable {
		check = "[x]"
	}
	b.WriteString(f.label(fieldBillable, "Billable") + " " + check + "\n")

	if f.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: ") + f.errMsg + "\n")
	}

	help := "Tab: next field • Space: toggle billable • Enter: save • Esc: cancel"
	if f.suggester != nil {
		help += " • Ctrl+G: suggest project"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (f *Form) label(target field, text string) string {
	if f.focus == target {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

// PreviewLine renders the live total for an interval text field: the
// exact unrounded minutes of every parsed interval, plus any segments
// that would be ignored. Shown while typing so the user sees what a
// save would record.
func PreviewLine(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	intervals, dropped := timecalc.ParseIntervalList(text)
	var parts []string
	if len(intervals) > 0 {
		parts = append(parts, fmt.Sprintf("%s = %s exact",
			timecalc.FormatIntervals(intervals),
			timecalc.FormatMinutes(timecalc.TotalMinutes(intervals)),
		))
	}
	if len(dropped) > 0 {
		parts = append(parts, "ignored: "+strings.Join(dropped, ", "))
	}
	if len(parts) == 0 {
		return "no valid intervals yet"
	}
	return strings.Join(parts, " • ")
}
