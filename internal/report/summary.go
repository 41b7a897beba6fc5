// Package report aggregates the session history into per-day summaries and
// renders them as a PDF.
package report

import (
	"sort"
	"time"

	"github.com/akyairhashvil/pomo/internal/models"
)

// DaySummary totals the phases completed on one calendar day.
type DaySummary struct {
	Day          time.Time
	WorkSessions int
	FocusSeconds int
	Breaks       int
	BreakSeconds int
	// Cycles counts work sessions that completed a session goal.
	Cycles int
}

func (d DaySummary) FocusMinutes() int {
	return d.FocusSeconds / 60
}

// Summarize groups records by the local calendar day they ended on, oldest day first.
func Summarize(records []models.SessionRecord, loc *time.Location) []DaySummary {
	if loc == nil {
		loc = time.Local
	}
	byDay := make(map[time.Time]*DaySummary)
	for _, r := range records {
		t := r.EndedAt.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		sum, ok := byDay[day]
		if !ok {
			sum = &DaySummary{Day: day}
			byDay[day] = sum
		}
		switch r.Phase {
		case models.PhaseWork:
			sum.WorkSessions++
			sum.FocusSeconds += r.PlannedSeconds
			if r.Goal > 0 && r.Ordinal >= r.Goal {
				sum.Cycles++
			}
		case models.PhaseBreak:
			sum.Breaks++
			sum.BreakSeconds += r.PlannedSeconds
		}
	}

	out := make([]DaySummary, 0, len(byDay))
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// Totals sums a set of day summaries.
func Totals(days []DaySummary) DaySummary {
	var t DaySummary
	for _, d := range days {
		t.WorkSessions += d.WorkSessions
		t.FocusSeconds += d.FocusSeconds
		t.Breaks += d.Breaks
		t.BreakSeconds += d.BreakSeconds
		t.Cycles += d.Cycles
	}
	return t
}
