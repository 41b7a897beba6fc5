package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/akyairhashvil/pomo/internal/timer"
	"github.com/akyairhashvil/pomo/internal/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
)

// Options configures the interactive front end.
type Options struct {
	Presets config.PresetTable
	Config  models.Configuration
	Store   timer.Store
	History timer.History
	Clock   timer.Clock
	Resume  string
	Sound   bool
	Theme   string
	// Bell receives the alert cue. Defaults to os.Stderr.
	Bell   io.Writer
	Logger zerolog.Logger
}

// Model is the root bubbletea model driving a timer.Engine.
type Model struct {
	ctx         context.Context
	engine      *timer.Engine
	screen      *screen
	ticks       *tickSource
	keys        keyMap
	help        help.Model
	progress    progress.Model
	goalInput   textinput.Model
	editingGoal bool
	theme       Theme
	log         zerolog.Logger
	width       int
	height      int
	quitting    bool
}

func New(opts Options) Model {
	bell := opts.Bell
	if bell == nil {
		bell = os.Stderr
	}
	scr := &screen{sound: opts.Sound, bell: bell}
	ticks := newTickSource(config.TickInterval)
	log := opts.Logger.With().Str("cmp", "tui").Logger()
	engineLog := opts.Logger.With().Str("cmp", "timer").Logger()

	engine := timer.New(timer.Options{
		Presets:  opts.Presets,
		Config:   opts.Config,
		Store:    opts.Store,
		History:  opts.History,
		Observer: scr,
		Ticker:   ticks,
		Clock:    opts.Clock,
		Resume:   opts.Resume,
		Logger:   &engineLog,
	})

	theme := ThemeByName(opts.Theme)
	gi := textinput.New()
	gi.Placeholder = strconv.Itoa(config.DefaultSessionGoal)
	gi.CharLimit = config.MaxGoalDigits
	gi.Width = config.MaxGoalDigits + 1
	gi.Prompt = "Goal: "

	m := Model{
		ctx:       context.Background(),
		engine:    engine,
		screen:    scr,
		ticks:     ticks,
		keys:      defaultKeyMap(),
		help:      help.New(),
		progress:  progress.New(progress.WithGradient(theme.Gradient[0], theme.Gradient[1]), progress.WithoutPercentage()),
		goalInput: gi,
		theme:     theme,
		log:       log,
	}
	m.progress.Width = config.TargetProgressWidth
	scr.view = engine.View()
	return m
}

// Engine exposes the underlying timer.
func (m Model) Engine() *timer.Engine {
	return m.engine
}

// Init restores the saved snapshot and schedules the first tick if the
// restored timer is running.
func (m Model) Init() tea.Cmd {
	m.engine.Restore(m.ctx)
	return tea.Batch(m.ticks.next(), tea.SetWindowTitle(config.AppName))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.progress.Width = util.Clamp(msg.Width-8, config.MinProgressWidth, config.TargetProgressWidth)
		return m, nil

	case TickMsg:
		if !m.ticks.accepts(msg) {
			return m, nil
		}
		m.ticks.pending = true
		m.engine.Tick(m.ctx)
		return m, m.ticks.next()

	case tea.KeyMsg:
		if m.editingGoal {
			m, cmd = m.updateGoalInput(msg)
			return m, tea.Batch(cmd, m.ticks.next())
		}
		m, cmd = m.handleKey(msg)
		return m, tea.Batch(cmd, m.ticks.next())
	}

	if m.editingGoal {
		m.goalInput, cmd = m.goalInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Help) {
		m.screen.notice = ""
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Unload(m.ctx)
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.engine.Toggle(m.ctx)

	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset(m.ctx, true)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Preset):
		if m.rejectLocked("preset") {
			return m, nil
		}
		next := m.engine.Presets().Next(m.engine.State().Config.PresetKey)
		m.engine.SetPreset(m.ctx, next)
		m.screen.notice = "Preset " + FormatPreset(next, m.engine.State().Config.Preset)

	case key.Matches(msg, m.keys.GoalUp), key.Matches(msg, m.keys.GoalDown):
		if m.rejectLocked("goal") {
			return m, nil
		}
		delta := 1
		if key.Matches(msg, m.keys.GoalDown) {
			delta = -1
		}
		m.engine.SetSessionGoal(m.ctx, m.engine.State().Config.SessionGoal+delta)

	case key.Matches(msg, m.keys.Goal):
		if m.rejectLocked("goal") {
			return m, nil
		}
		m.editingGoal = true
		m.goalInput.SetValue(strconv.Itoa(m.engine.State().Config.SessionGoal))
		m.goalInput.CursorEnd()
		return m, m.goalInput.Focus()
	}
	return m, nil
}

func (m Model) updateGoalInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.editingGoal = false
		return m.handleKey(msg)
	case tea.KeyEsc:
		m.editingGoal = false
		m.goalInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editingGoal = false
		m.goalInput.Blur()
		raw := strings.TrimSpace(m.goalInput.Value())
		goal, err := strconv.Atoi(raw)
		if err != nil {
			m.screen.notice = fmt.Sprintf("Session goal must be a whole number, got %q", raw)
			return m, nil
		}
		if m.rejectLocked("goal") {
			return m, nil
		}
		m.engine.SetSessionGoal(m.ctx, goal)
		return m, nil
	}
	var cmd tea.Cmd
	m.goalInput, cmd = m.goalInput.Update(msg)
	return m, cmd
}

// rejectLocked sets a notice and reports true while settings are locked.
func (m Model) rejectLocked(what string) bool {
	if !m.screen.locked {
		return false
	}
	m.log.Debug().Str("setting", what).Msg("rejected while running")
	m.screen.notice = "Pause the timer to change the " + what
	return true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	v := m.screen.view
	compact := m.width > 0 && m.width < config.CompactModeThreshold

	var b strings.Builder
	b.WriteString(m.theme.Header.Render("pomo"))
	if !compact {
		b.WriteString(m.theme.Dim.Render("  v" + VersionLabel()))
	}
	b.WriteString("\n\n")

	phase := m.theme.phaseStyle(v.Phase).Render(v.Phase)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		phase, m.theme.Clock.Render(v.Clock), m.theme.Dim.Render(FormatRunState(v.State.Running))) + "\n")
	if !compact {
		b.WriteString(m.progress.ViewAs(v.Fraction) + "\n")
	}
	b.WriteString(m.theme.Session.Render(v.Progress) + "\n")

	cfg := v.State.Config
	settings := FormatPreset(cfg.PresetKey, cfg.Preset)
	if compact {
		settings = cfg.PresetKey
	}
	line := m.theme.Dim.Render(settings)
	if m.screen.locked {
		line += " " + m.theme.Locked.Render("[locked]")
	}
	b.WriteString(line + "\n")

	if m.editingGoal {
		b.WriteString(m.theme.Input.Render(m.goalInput.View()) + "\n")
	}
	if m.screen.notice != "" {
		notice := m.screen.notice
		if m.width > 0 {
			notice = ansi.Truncate(notice, m.width-4, config.TruncationSuffix)
		}
		b.WriteString(m.theme.Notice.Render(notice) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))

	return m.theme.Base.Render(b.String())
}
