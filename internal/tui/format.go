package tui

import (
	"fmt"
	"time"

	"github.com/akyairhashvil/pomo/internal/models"
)

// FormatDuration formats a duration for display (e.g., "2h 15m", "45s").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatPreset describes a preset, e.g. "25/5 (25m work, 5m break)".
func FormatPreset(key string, p models.Preset) string {
	return fmt.Sprintf("%s (%s work, %s break)", key,
		FormatDuration(time.Duration(p.Work)*time.Minute),
		FormatDuration(time.Duration(p.Break)*time.Minute))
}

// FormatRunState returns "Running" or "Paused".
func FormatRunState(running bool) string {
	if running {
		return "Running"
	}
	return "Paused"
}
