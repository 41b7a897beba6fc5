package timer

import (
	"fmt"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/models"
)

// View is the display state handed to the Observer after every change.
type View struct {
	Clock    string
	Phase    string
	Progress string
	// Fraction of the current phase already elapsed, in [0, 1].
	Fraction float64
	State    models.State
}

// FormatClock renders seconds as zero-padded "MM:SS". Negative input renders as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// PhaseLabel returns the user-facing name of a phase.
func PhaseLabel(p models.Phase) string {
	if p == models.PhaseBreak {
		return config.LabelBreak
	}
	return config.LabelWork
}

// SessionLabel renders the session progress, e.g. "Session 2 of 4".
func SessionLabel(s models.State) string {
	return fmt.Sprintf("Session %d of %d", s.SessionOrdinal(), s.Config.SessionGoal)
}

func newView(s models.State) View {
	total := s.Config.Preset.Seconds(s.Phase)
	var frac float64
	if total > 0 {
		frac = float64(total-s.RemainingSeconds) / float64(total)
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return View{
		Clock:    FormatClock(s.RemainingSeconds),
		Phase:    PhaseLabel(s.Phase),
		Progress: SessionLabel(s),
		Fraction: frac,
		State:    s,
	}
}
