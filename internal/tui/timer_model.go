package tui

import (
	"io"
	"time"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// TickMsg is one scheduled second. Gen identifies the ticker run that
// scheduled it; ticks from a stopped run are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickSource is the engine's Ticker. Start and Stop only bump the
// generation; the model turns a pending start into a tea.Tick command.
type tickSource struct {
	interval time.Duration
	gen      int
	active   bool
	pending  bool
}

func newTickSource(interval time.Duration) *tickSource {
	return &tickSource{interval: interval}
}

func (t *tickSource) Start() {
	t.gen++
	t.active = true
	t.pending = true
}

func (t *tickSource) Stop() {
	t.gen++
	t.active = false
	t.pending = false
}

func (t *tickSource) accepts(msg TickMsg) bool {
	return t.active && msg.Gen == t.gen
}

// next returns the command for the next tick, or nil if none is due.
func (t *tickSource) next() tea.Cmd {
	if !t.active || !t.pending {
		return nil
	}
	t.pending = false
	gen := t.gen
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: now}
	})
}

// screen is the engine's Observer. It holds what View draws.
type screen struct {
	view   timer.View
	locked bool
	notice string
	alerts int
	sound  bool
	bell   io.Writer
}

func (s *screen) Render(v timer.View) {
	s.view = v
}

func (s *screen) SettingsLocked(locked bool) {
	s.locked = locked
}

// PlayAlert rings the terminal bell when sound is enabled.
func (s *screen) PlayAlert() {
	s.alerts++
	if !s.sound || s.bell == nil {
		return
	}
	_, _ = io.WriteString(s.bell, string(rune(ansi.BEL)))
}

func (s *screen) GoalReached(int) {
	s.notice = config.CompletionMessage
}

var (
	_ timer.Ticker   = (*tickSource)(nil)
	_ timer.Observer = (*screen)(nil)
)
