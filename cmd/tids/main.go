package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tj/go-naturaldate"

	"github.com/VisionInno/tidsrapportering/internal/config"
	"github.com/VisionInno/tidsrapportering/internal/export"
	"github.com/VisionInno/tidsrapportering/internal/store"
	"github.com/VisionInno/tidsrapportering/internal/suggest"
	"github.com/VisionInno/tidsrapportering/internal/summary"
	"github.com/VisionInno/tidsrapportering/internal/timecalc"
	"github.com/VisionInno/tidsrapportering/internal/timer"
	"github.com/VisionInno/tidsrapportering/internal/tui"
	"github.com/VisionInno/tidsrapportering/internal/watch"
)

var rootCmd = &cobra.Command{
	Use:   "tids",
	Short: "Personal time tracking with quarter-hour billing",
	Long:  "tids logs work intervals against projects, rounds them up to quarter hours per project and day, and exports summaries and invoices.",
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a time entry (interactive form without flags)",
	RunE:  runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <entry-id>",
	Short: "Edit an entry in the interactive form",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries in a date range",
	RunE:  runList,
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entries",
	RunE:  runToday,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show rounded totals per project and day",
	RunE:  runSummary,
}

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Show invoice line items for a date range",
	RunE:  runInvoice,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as CSV or ICS",
	RunE:  runExport,
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE:  runProjects,
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsAdd,
}

var projectsArchiveCmd = &cobra.Command{
	Use:   "archive <name-or-id>",
	Short: "Archive a project so it no longer appears in pickers",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsArchive,
}

var startCmd = &cobra.Command{
	Use:   "start <project>",
	Short: "Start the timer on a project (stops a running timer first)",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the timer and log the entry",
	RunE:  runStop,
}

var describeCmd = &cobra.Command{
	Use:   "describe <text>",
	Short: "Set the running timer's description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDescribe,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running timer",
	RunE:  runStatus,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the timer and enforce warning/auto-stop thresholds",
	RunE:  runWatch,
}

var watchStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running watcher",
	RunE:  runWatchStop,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <description>",
	Short: "Suggest a project for a work description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSuggest,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open the config file in your editor",
	RunE:  runConfig,
}

func init() {
	addCmd.Flags().String("date", "", "Entry date (YYYY-MM-DD, default today)")
	addCmd.Flags().String("project", "", "Project name or id")
	addCmd.Flags().String("intervals", "", "Comma-separated intervals, e.g. \"08:00-09:30, 12.15-12.45\"")
	addCmd.Flags().Float64("hours", 0, "Manual hours (used when no intervals given)")
	addCmd.Flags().String("description", "", "What was worked on")
	addCmd.Flags().Bool("billable", false, "Mark the entry billable")

	for _, c := range []*cobra.Command{listCmd, summaryCmd, invoiceCmd, exportCmd} {
		c.Flags().String("from", "", "Range start (YYYY-MM-DD or natural, e.g. \"last monday\"; default this week)")
		c.Flags().String("to", "", "Range end (default this week)")
	}
	exportCmd.Flags().String("format", "csv", "Output format: csv or ics")
	exportCmd.Flags().String("out", "", "Output file (default derived name in current dir, \"-\" for stdout)")

	projectsCmd.Flags().Bool("all", false, "Include archived projects")
	projectsAddCmd.Flags().String("client", "", "Client name")
	projectsAddCmd.Flags().String("color", "", "Display color, e.g. #3b82f6")
	projectsAddCmd.Flags().Float64("rate", 0, "Default hourly rate")

	startCmd.Flags().StringP("description", "d", "", "Timer description")

	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsArchiveCmd)
	watchCmd.AddCommand(watchStopCmd)

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*store.DB, error) {
	path, err := store.DefaultPath()
	if err != nil {
		return nil, err
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// resolveProject accepts a project id or exact name.
func resolveProject(db *store.DB, ref string) (*store.Project, error) {
	p, err := db.GetProject(ref)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p, err = db.FindProjectByName(ref)
		if err != nil {
			return nil, err
		}
	}
	if p == nil {
		return nil, fmt.Errorf("project %q not found", ref)
	}
	return p, nil
}

// parseWhen accepts YYYY-MM-DD or a natural phrase like "last monday".
func parseWhen(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := naturaldate.Parse(s, time.Now(), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q: %w", s, err)
	}
	return t, nil
}

// dateRange resolves --from/--to flags, defaulting to the current week.
func dateRange(cmd *cobra.Command) (string, string, error) {
	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")

	monday, sunday := timecalc.WeekRange(time.Now())
	from, to := monday, sunday

	var err error
	if fromFlag != "" {
		if from, err = parseWhen(fromFlag); err != nil {
			return "", "", err
		}
	}
	if toFlag != "" {
		if to, err = parseWhen(toFlag); err != nil {
			return "", "", err
		}
	}
	if timecalc.DateOf(to) < timecalc.DateOf(from) {
		return "", "", fmt.Errorf("range end %s is before start %s", timecalc.DateOf(to), timecalc.DateOf(from))
	}
	return timecalc.DateOf(from), timecalc.DateOf(to), nil
}

func loadRange(cmd *cobra.Command, db *store.DB) ([]store.Entry, map[string]store.Project, string, string, error) {
	from, to, err := dateRange(cmd)
	if err != nil {
		return nil, nil, "", "", err
	}
	entries, err := db.EntriesBetween(from, to)
	if err != nil {
		return nil, nil, "", "", err
	}
	projects, err := db.ProjectMap()
	if err != nil {
		return nil, nil, "", "", err
	}
	return entries, projects, from, to, nil
}

func hasProject(projects []store.Project, id string) bool {
	for _, p := range projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

func projectLabel(projects map[string]store.Project, id string) string {
	if p, ok := projects[id]; ok {
		return p.Name
	}
	return summary.UnknownProjectName
}

func runAdd(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if !cmd.Flags().Changed("project") {
		return runAddForm(db, "")
	}

	projectRef, _ := cmd.Flags().GetString("project")
	project, err := resolveProject(db, projectRef)
	if err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = timecalc.DateOf(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}

	description, _ := cmd.Flags().GetString("description")
	billable, _ := cmd.Flags().GetBool("billable")

	entry := &store.Entry{
		Date:        date,
		ProjectID:   project.ID,
		Description: description,
		Billable:    billable,
	}

	intervalText, _ := cmd.Flags().GetString("intervals")
	if intervalText != "" {
		intervals, dropped := timecalc.ParseIntervalList(intervalText)
		if len(dropped) > 0 {
			return fmt.Errorf("unparseable intervals: %s", strings.Join(dropped, ", "))
		}
		if len(intervals) == 0 {
			return fmt.Errorf("no valid intervals in %q", intervalText)
		}
		entry.Intervals = intervals
		entry.Hours = float64(timecalc.TotalMinutes(intervals)) / 60
	} else {
		hours, _ := cmd.Flags().GetFloat64("hours")
		if hours <= 0 {
			return fmt.Errorf("give --intervals or a positive --hours")
		}
		entry.Hours = hours
	}

	if err := db.InsertEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Added %s: %s on %s (%s exact)\n",
		entry.ID[:8], project.Name, entry.Date,
		timecalc.FormatMinutes(summary.EntryExactMinutes(*entry)))
	return nil
}

func runAddForm(db *store.DB, editID string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	projects, err := db.ListProjects(false)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return fmt.Errorf("no active projects — run 'tids projects add <name>' first")
	}

	var form *tui.Form
	if editID == "" {
		form = tui.NewForm(projects, timecalc.DateOf(time.Now()))
	} else {
		existing, err := db.GetEntry(editID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("entry %s not found", editID)
		}
		// An archived project stays in the picker for its own entry so
		// editing never silently repoints the entry.
		if !hasProject(projects, existing.ProjectID) {
			p, err := db.GetProject(existing.ProjectID)
			if err != nil {
				return err
			}
			if p != nil {
				projects = append(projects, *p)
			}
		}
		form = tui.NewEditForm(projects, *existing)
	}

	if cfg.Suggest.APIKey != "" {
		form.SetSuggester(suggest.NewOpenAI(cfg.Suggest.APIKey, cfg.Suggest.Model))
	}

	if _, err := tea.NewProgram(form).Run(); err != nil {
		return fmt.Errorf("running form: %w", err)
	}

	entry := form.Entry()
	if entry == nil {
		fmt.Println("Canceled.")
		return nil
	}

	if editID == "" {
		err = db.InsertEntry(entry)
	} else {
		err = db.UpdateEntry(entry)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Saved entry for %s (%s exact)\n",
		entry.Date, timecalc.FormatMinutes(summary.EntryExactMinutes(*entry)))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return runAddForm(db, args[0])
}

func runDelete(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteEntry(args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, projects, from, to, err := loadRange(cmd, db)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No entries between %s and %s.\n", from, to)
		return nil
	}

	fmt.Printf("Entries %s – %s:\n\n", from, to)
	for _, e := range entries {
		printEntry(e, projects)
	}
	return nil
}

func printEntry(e store.Entry, projects map[string]store.Project) {
	timeStr := "--:--"
	if len(e.Intervals) > 0 {
		timeStr = timecalc.FormatIntervals(e.Intervals)
	}
	billable := " "
	if e.Billable {
		billable = "$"
	}
	fmt.Printf("  %s  %s  %-20s %s  %-24s %s\n",
		e.ID[:8],
		e.Date,
		projectLabel(projects, e.ProjectID),
		billable,
		timeStr,
		timecalc.FormatMinutes(summary.EntryExactMinutes(e)),
	)
	if e.Description != "" {
		fmt.Printf("            %s\n", e.Description)
	}
}

func runToday(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.EntriesOn(timecalc.DateOf(time.Now()))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No entries logged today.")
		return nil
	}

	projects, err := db.ProjectMap()
	if err != nil {
		return err
	}

	// Sort by first interval start; manual entries go last.
	sort.SliceStable(entries, func(i, j int) bool {
		return firstStart(entries[i]) < firstStart(entries[j])
	})

	fmt.Println("Today:")
	fmt.Println()
	for _, e := range entries {
		printEntry(e, projects)
	}
	fmt.Printf("\n%s\n", todayFooter(entries, projects))
	return nil
}

// todayFooter shows the exact minute total next to the billed figure
// from the same bucket pass that summary and invoice use.
func todayFooter(entries []store.Entry, projects map[string]store.Project) string {
	exact := 0
	for _, e := range entries {
		exact += summary.EntryExactMinutes(e)
	}
	totals := summary.Calculate(entries, projects)
	return fmt.Sprintf("Total: %s exact, %.2f h billed (%d entries)",
		timecalc.FormatMinutes(exact), totals.TotalHours, len(entries))
}

func firstStart(e store.Entry) string {
	if len(e.Intervals) > 0 {
		return e.Intervals[0].Start
	}
	return "99:99"
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, projects, from, to, err := loadRange(cmd, db)
	if err != nil {
		return err
	}

	totals := summary.Calculate(entries, projects)

	fmt.Printf("Summary %s – %s\n\n", from, to)
	fmt.Printf("  Total:    %.2f h\n", totals.TotalHours)
	fmt.Printf("  Billable: %.2f %s\n", totals.TotalBillable, cfg.Billing.Currency)

	if len(totals.HoursByProject) > 0 {
		fmt.Println("\nBy project:")
		for _, id := range sortedKeys(totals.HoursByProject) {
			fmt.Printf("  %-24s %6.2f h\n", projectLabel(projects, id), totals.HoursByProject[id])
		}
	}
	if len(totals.HoursByDate) > 0 {
		fmt.Println("\nBy day:")
		for _, date := range sortedKeys(totals.HoursByDate) {
			fmt.Printf("  %s  %6.2f h\n", date, totals.HoursByDate[date])
		}
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runInvoice(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, projects, from, to, err := loadRange(cmd, db)
	if err != nil {
		return err
	}

	lines := summary.InvoiceLines(entries, projects)
	if len(lines) == 0 {
		fmt.Printf("Nothing to invoice between %s and %s.\n", from, to)
		return nil
	}

	fmt.Printf("Invoice %s – %s\n\n", from, to)
	var total float64
	for _, l := range lines {
		fmt.Printf("  %s  %-24s %6.2f h  @ %7.2f  = %9.2f %s\n",
			l.Date, l.ProjectName, l.Hours, l.Rate, l.Amount, cfg.Billing.Currency)
		total += l.Amount
	}
	fmt.Printf("\n  Total: %.2f %s\n", total, cfg.Billing.Currency)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, projects, from, to, err := loadRange(cmd, db)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	data := export.Data{Entries: entries, Projects: projects, From: from, To: to}

	out, _ := cmd.Flags().GetString("out")
	if out == "-" {
		return export.Write(os.Stdout, data, format)
	}
	if out == "" {
		out = export.Filename(data, format)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := export.Write(f, data, format); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func runProjects(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	includeArchived, _ := cmd.Flags().GetBool("all")
	projects, err := db.ListProjects(includeArchived)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects yet — run 'tids projects add <name>'.")
		return nil
	}

	for _, p := range projects {
		rate := "-"
		if p.DefaultHourlyRate != nil {
			rate = fmt.Sprintf("%.2f", *p.DefaultHourlyRate)
		}
		state := ""
		if !p.Active {
			state = "  (archived)"
		}
		fmt.Printf("  %s  %-24s %-16s rate %s%s\n", p.ID[:8], p.Name, p.Client, rate, state)
	}
	return nil
}

func runProjectsAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	p := &store.Project{Name: args[0], Active: true}
	p.Client, _ = cmd.Flags().GetString("client")
	p.Color, _ = cmd.Flags().GetString("color")
	if rate, _ := cmd.Flags().GetFloat64("rate"); rate > 0 {
		p.DefaultHourlyRate = &rate
	} else if cfg.Billing.DefaultHourlyRate > 0 {
		rate := cfg.Billing.DefaultHourlyRate
		p.DefaultHourlyRate = &rate
	}

	if err := db.InsertProject(p); err != nil {
		return err
	}
	fmt.Printf("Created project %s (%s)\n", p.Name, p.ID[:8])
	return nil
}

func runProjectsArchive(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := resolveProject(db, args[0])
	if err != nil {
		return err
	}
	p.Active = false
	if err := db.UpdateProject(p); err != nil {
		return err
	}
	fmt.Printf("Archived %s\n", p.Name)
	return nil
}

func newTimer(db *store.DB) (*timer.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return timer.New(db, cfg), cfg, nil
}

func runStart(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	svc, _, err := newTimer(db)
	if err != nil {
		return err
	}

	project, err := resolveProject(db, args[0])
	if err != nil {
		return err
	}
	description, _ := cmd.Flags().GetString("description")

	stopped, err := svc.Start(project.ID, description)
	if err != nil {
		return err
	}
	if stopped != nil {
		fmt.Printf("Stopped previous timer and logged %s exact\n",
			timecalc.FormatMinutes(summary.EntryExactMinutes(*stopped)))
	}
	fmt.Printf("Timer started on %s\n", project.Name)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	svc, _, err := newTimer(db)
	if err != nil {
		return err
	}

	entry, err := svc.Stop()
	if err != nil {
		return err
	}

	projects, err := db.ProjectMap()
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s on %s (%s)\n",
		timecalc.FormatMinutes(summary.EntryExactMinutes(*entry)),
		projectLabel(projects, entry.ProjectID),
		timecalc.FormatIntervals(entry.Intervals))
	return nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	svc, _, err := newTimer(db)
	if err != nil {
		return err
	}

	if err := svc.SetDescription(strings.Join(args, " ")); err != nil {
		return err
	}
	fmt.Println("Description updated.")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	svc, _, err := newTimer(db)
	if err != nil {
		return err
	}

	running, elapsed, err := svc.Status()
	if err != nil {
		return err
	}
	if running == nil {
		fmt.Println("No timer is running.")
		return nil
	}

	projects, err := db.ProjectMap()
	if err != nil {
		return err
	}

	fmt.Printf("Timer running on %s since %s (%s elapsed)\n",
		projectLabel(projects, running.ProjectID),
		timecalc.ClockOf(running.StartTime.Local()),
		elapsed.Round(time.Second))
	if running.Description != "" {
		fmt.Printf("  %s\n", running.Description)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	svc, cfg, err := newTimer(db)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return watch.New(cfg, svc).Run(ctx)
}

func runWatchStop(cmd *cobra.Command, args []string) error {
	pid, err := watch.ReadPID()
	if err != nil {
		return err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("finding process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("sending stop signal: %w", err)
	}

	fmt.Printf("Sent stop signal to watcher (PID %d)\n", pid)
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Suggest.APIKey == "" {
		return fmt.Errorf("no API key configured — set OPENAI_API_KEY or [suggest] api_key in the config")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	projects, err := db.ListProjects(false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var provider suggest.Provider = suggest.NewOpenAI(cfg.Suggest.APIKey, cfg.Suggest.Model)
	match, err := provider.MatchProject(ctx, strings.Join(args, " "), projects)
	if err != nil {
		return err
	}

	if match.ProjectID == "" {
		fmt.Printf("No confident match. %s\n", match.Reason)
		return nil
	}
	fmt.Printf("%s (confidence %.0f%%)\n", match.ProjectName, match.Confidence*100)
	if match.Reason != "" {
		fmt.Printf("  %s\n", match.Reason)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	path, err := config.WriteDefault()
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", path, editor)

	c, err := editorCommand(editor, path)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", path)
		return nil
	}
	return c.Run()
}

// editorCommand resolves the editor through PATH so a bare name like
// "vi" works.
func editorCommand(editor, path string) (*exec.Cmd, error) {
	bin, err := exec.LookPath(editor)
	if err != nil {
		return nil, fmt.Errorf("finding editor %s: %w", editor, err)
	}
	c := exec.Command(bin, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c, nil
}
