package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/VisionInno/tidsrapportering/internal/summary"
)

// WriteCSV writes one row per entry with its exact hours, then a total
// row with the bucket-rounded figures from summary.Calculate. Semicolon
// delimiter and a UTF-8 BOM keep spreadsheet imports happy.
func WriteCSV(w io.Writer, d Data) error {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := []string{"Date", "Project", "Description", "Hours", "Billable", "Rate", "Amount"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range d.Entries {
		exactHours := float64(summary.EntryExactMinutes(e)) / 60
		rate := entryRate(e, d.Projects)

		billable := "no"
		amount := 0.0
		if e.Billable {
			billable = "yes"
			amount = exactHours * rate
		}

		row := []string{
			e.Date,
			projectName(d.Projects, e.ProjectID),
			e.Description,
			formatHours(exactHours),
			billable,
			formatHours(rate),
			formatHours(amount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing entry row: %w", err)
		}
	}

	totals := summary.Calculate(d.Entries, d.Projects)
	totalRow := []string{
		"Total", "", "",
		formatHours(totals.TotalHours),
		"", "",
		formatHours(totals.TotalBillable),
	}
	if err := cw.Write(totalRow); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
