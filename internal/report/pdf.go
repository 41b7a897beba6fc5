package report

import (
	"fmt"
	"time"

	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/akyairhashvil/pomo/internal/timer"
	"github.com/go-pdf/fpdf"
)

// DefaultFileName returns the report file name for the day of now.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("pomo_report_%s.pdf", now.Format("2006-01-02"))
}

// WritePDF renders a productivity report for records to path. since is shown
// in the header when non-zero.
func WritePDF(path string, records []models.SessionRecord, since time.Time, loc *time.Location) error {
	days := Summarize(records, loc)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Pomodoro Report", false)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	title := "Pomodoro Report"
	if !since.IsZero() {
		title = fmt.Sprintf("Pomodoro Report since %s", since.Format("2006-01-02"))
	}
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	if len(days) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, "No completed sessions recorded.")
		pdf.Ln(8)
		return pdf.OutputFileAndClose(path)
	}

	// Table header
	pdf.SetFont("Arial", "B", 12)
	widths := []float64{40, 35, 35, 30, 30}
	for i, h := range []string{"Day", "Work sessions", "Focus", "Breaks", "Cycles"} {
		pdf.CellFormat(widths[i], 8, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	for _, d := range days {
		row := []string{
			d.Day.Format("Mon 2006-01-02"),
			fmt.Sprintf("%d", d.WorkSessions),
			formatMinutes(d.FocusSeconds),
			fmt.Sprintf("%d", d.Breaks),
			fmt.Sprintf("%d", d.Cycles),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "", 0, "L", false, 0, "")
		}
		pdf.Ln(7)
	}

	// Summary
	total := Totals(days)
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total Work Sessions: %d (%s focused)", total.WorkSessions, formatMinutes(total.FocusSeconds)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Completed Cycles: %d", total.Cycles))
	pdf.Ln(10)

	// Most recent phases
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Recent Phases")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for i, r := range records {
		if i == 20 {
			break
		}
		line := fmt.Sprintf("[%s] %s %s (%s), session %d of %d",
			r.EndedAt.In(locOrLocal(loc)).Format("2006-01-02 15:04"),
			timer.PhaseLabel(r.Phase), timer.FormatClock(r.PlannedSeconds), r.PresetKey, r.Ordinal, r.Goal)
		pdf.MultiCell(0, 6, line, "", "", false)
	}

	return pdf.OutputFileAndClose(path)
}

func formatMinutes(seconds int) string {
	return fmt.Sprintf("%dh %02dm", seconds/3600, (seconds%3600)/60)
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
