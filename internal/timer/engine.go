// Package timer implements the Pomodoro state machine: a single countdown
// alternating between work and break phases, counted against a session goal,
// with snapshot persistence and wall-clock reconciliation on restore.
//
// The Engine is not safe for concurrent use. Callers deliver ticks and
// commands from one goroutine, one at a time.
package timer

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/rs/zerolog"
)

// Options configures an Engine. Nil collaborators get no-op defaults and a
// nil Store gets an in-memory one.
type Options struct {
	Presets  config.PresetTable
	Config   models.Configuration
	Store    Store
	History  History
	Observer Observer
	Ticker   Ticker
	Clock    Clock
	// Resume is config.ResumeAuto or config.ResumeManual.
	Resume string
	Logger *zerolog.Logger
}

// Engine owns the TimerState and every transition on it.
type Engine struct {
	state    models.State
	presets  config.PresetTable
	store    Store
	history  History
	observer Observer
	ticker   Ticker
	clock    Clock
	resume   string
	log      zerolog.Logger
	ticking  bool
}

// New builds an engine in the initial Work phase. Call Restore to load saved state.
func New(opts Options) *Engine {
	e := &Engine{
		presets:  opts.Presets,
		store:    opts.Store,
		history:  opts.History,
		observer: opts.Observer,
		ticker:   opts.Ticker,
		clock:    opts.Clock,
		resume:   opts.Resume,
		log:      zerolog.Nop(),
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	if len(e.presets) == 0 {
		e.presets = config.DefaultPresets()
	}
	if e.store == nil {
		e.store = NewMemoryStore()
	}
	if e.history == nil {
		e.history = nopHistory{}
	}
	if e.observer == nil {
		e.observer = nopObserver{}
	}
	if e.ticker == nil {
		e.ticker = nopTicker{}
	}
	if e.clock == nil {
		e.clock = SystemClock
	}
	if e.resume != config.ResumeManual {
		e.resume = config.ResumeAuto
	}
	e.state = freshState(e.normalize(opts.Config))
	return e
}

// State returns a copy of the current timer state.
func (e *Engine) State() models.State {
	return e.state
}

// View returns the current display state.
func (e *Engine) View() View {
	return newView(e.state)
}

// Presets returns the preset table the engine resolves configurations against.
func (e *Engine) Presets() config.PresetTable {
	return e.presets
}

// SettingsLocked reports whether configuration edits should be refused by the UI.
func (e *Engine) SettingsLocked() bool {
	return e.state.Running
}

// Start begins ticking. It is a no-op if already running.
func (e *Engine) Start(_ context.Context) {
	if e.state.Running {
		return
	}
	e.state.Running = true
	e.startTicking()
	e.observer.SettingsLocked(true)
	e.render()
}

// Pause stops ticking and persists a snapshot. It is a no-op if not running.
func (e *Engine) Pause(ctx context.Context) {
	if !e.state.Running {
		return
	}
	e.state.Running = false
	e.stopTicking()
	e.observer.SettingsLocked(false)
	e.persist(ctx)
	e.render()
}

// Toggle pauses a running timer and starts a stopped one.
func (e *Engine) Toggle(ctx context.Context) {
	if e.state.Running {
		e.Pause(ctx)
		return
	}
	e.Start(ctx)
}

// Tick advances the countdown by one second. When the countdown is already
// at zero the phase transition runs and ticking continues in the new phase.
func (e *Engine) Tick(ctx context.Context) {
	if !e.state.Running {
		return
	}
	if e.state.RemainingSeconds > 0 {
		e.state.RemainingSeconds--
		e.render()
		return
	}

	e.stopTicking()
	if e.advance(ctx, e.clock.Now(), true) {
		e.startTicking()
		e.persist(ctx)
	}
}

// Reset stops the timer and returns to the first Work phase of the current
// configuration. An explicit reset also clears the saved snapshot.
func (e *Engine) Reset(ctx context.Context, explicit bool) {
	e.stopTicking()
	if explicit {
		if err := e.store.Clear(ctx); err != nil {
			e.log.Warn().Err(err).Msg("clear snapshot")
		}
	}
	e.state = freshState(e.state.Config)
	e.observer.SettingsLocked(false)
	e.render()
}

// ChangeConfiguration applies cfg and performs an explicit reset, discarding
// any countdown in progress. Invalid input is coerced rather than rejected.
func (e *Engine) ChangeConfiguration(ctx context.Context, cfg models.Configuration) {
	e.state.Config = e.normalize(cfg)
	e.Reset(ctx, true)
}

// SetPreset switches to the preset named key.
func (e *Engine) SetPreset(ctx context.Context, key string) {
	cfg := e.state.Config
	cfg.PresetKey = key
	e.ChangeConfiguration(ctx, cfg)
}

// SetSessionGoal changes the number of work sessions in a cycle.
func (e *Engine) SetSessionGoal(ctx context.Context, goal int) {
	cfg := e.state.Config
	cfg.SessionGoal = goal
	e.ChangeConfiguration(ctx, cfg)
}

// Snapshot returns the persistable form of the current state, stamped now.
func (e *Engine) Snapshot() models.Snapshot {
	s := e.state
	remaining := s.RemainingSeconds
	if remaining < 0 {
		remaining = 0
	}
	return models.Snapshot{
		TotalSeconds:      remaining,
		IsRunning:         s.Running,
		CurrentMode:       s.Phase,
		SessionsCompleted: s.SessionsCompleted,
		SessionGoal:       s.Config.SessionGoal,
		SelectedMode:      s.Config.PresetKey,
		Timestamp:         e.clock.Now().UnixMilli(),
	}
}

// Unload persists a final snapshot if the timer is running.
func (e *Engine) Unload(ctx context.Context) {
	if e.state.Running {
		e.persist(ctx)
	}
}

// Restore loads the saved snapshot from the store. A missing or unreadable
// snapshot yields a fresh, non-explicit reset.
func (e *Engine) Restore(ctx context.Context) {
	snap, err := e.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			e.log.Warn().Err(err).Msg("discarding saved snapshot")
		}
		e.Reset(ctx, false)
		return
	}
	e.RestoreSnapshot(ctx, snap)
}

// RestoreSnapshot replaces the engine state with snap. A running snapshot is
// reconciled against the time elapsed since it was taken, completing any
// phases that ended in the meantime.
func (e *Engine) RestoreSnapshot(ctx context.Context, snap models.Snapshot) {
	cfg, err := e.snapshotConfig(snap)
	if err != nil {
		e.log.Warn().Err(err).Msg("discarding saved snapshot")
		e.Reset(ctx, false)
		return
	}

	e.stopTicking()
	e.state = models.State{
		Phase:             snap.CurrentMode,
		RemainingSeconds:  snap.TotalSeconds,
		SessionsCompleted: snap.SessionsCompleted,
		Running:           snap.IsRunning,
		Config:            cfg,
		LastPersistedAt:   snap.TakenAt(),
	}

	if snap.IsRunning {
		if !e.reconcile(ctx, snap.TakenAt()) {
			return
		}
		if e.resume == config.ResumeManual {
			e.state.Running = false
			e.persist(ctx)
		} else {
			e.startTicking()
		}
	}
	e.observer.SettingsLocked(e.state.Running)
	e.render()
}

func (e *Engine) snapshotConfig(snap models.Snapshot) (models.Configuration, error) {
	if err := snap.Validate(); err != nil {
		return models.Configuration{}, err
	}
	preset, err := e.presets.Lookup(snap.SelectedMode)
	if err != nil {
		return models.Configuration{}, err
	}
	goal := config.CoerceSessionGoal(snap.SessionGoal)
	if snap.SessionsCompleted >= goal {
		return models.Configuration{}, models.ErrInvalidSnapshot
	}
	return models.Configuration{PresetKey: snap.SelectedMode, Preset: preset, SessionGoal: goal}, nil
}

// reconcile subtracts the wall-clock time since takenAt and runs every phase
// transition that fell due. It reports false if the goal was reached and the
// engine reset.
func (e *Engine) reconcile(ctx context.Context, takenAt time.Time) bool {
	elapsed := int(math.Round(e.clock.Now().Sub(takenAt).Seconds()))
	if elapsed < 0 {
		elapsed = 0
	}

	s := &e.state
	boundary := takenAt.Add(time.Duration(s.RemainingSeconds) * time.Second)
	s.RemainingSeconds -= elapsed
	transitions := 0
	for s.RemainingSeconds <= 0 {
		carry := -s.RemainingSeconds
		if !e.advance(ctx, boundary, false) {
			return false
		}
		transitions++
		boundary = boundary.Add(time.Duration(s.RemainingSeconds) * time.Second)
		s.RemainingSeconds -= carry
	}

	if transitions > 0 {
		e.log.Info().Int("elapsed", elapsed).Int("transitions", transitions).Msg("reconciled snapshot")
		e.observer.PlayAlert()
		e.persist(ctx)
	}
	return true
}

// advance completes the current phase at endedAt. It reports false when the
// session goal was reached, in which case the engine has been reset.
func (e *Engine) advance(ctx context.Context, endedAt time.Time, alert bool) bool {
	s := &e.state
	e.record(ctx, endedAt)

	if s.Phase == models.PhaseWork {
		s.SessionsCompleted++
		if s.SessionsCompleted >= s.Config.SessionGoal {
			if alert {
				e.observer.PlayAlert()
			}
			e.observer.GoalReached(s.Config.SessionGoal)
			e.Reset(ctx, true)
			return false
		}
		s.Phase = models.PhaseBreak
	} else {
		s.Phase = models.PhaseWork
	}
	s.RemainingSeconds = s.Config.Preset.Seconds(s.Phase)

	e.render()
	if alert {
		e.observer.PlayAlert()
	}
	return true
}

func (e *Engine) record(ctx context.Context, endedAt time.Time) {
	s := e.state
	rec := models.SessionRecord{
		Phase:          s.Phase,
		PresetKey:      s.Config.PresetKey,
		PlannedSeconds: s.Config.Preset.Seconds(s.Phase),
		Ordinal:        s.SessionOrdinal(),
		Goal:           s.Config.SessionGoal,
		EndedAt:        endedAt,
	}
	if err := e.history.Record(ctx, rec); err != nil {
		e.log.Warn().Err(err).Str("phase", string(rec.Phase)).Msg("record session")
	}
}

func (e *Engine) persist(ctx context.Context) {
	snap := e.Snapshot()
	if err := e.store.Save(ctx, snap); err != nil {
		e.log.Warn().Err(err).Msg("save snapshot")
		return
	}
	e.state.LastPersistedAt = snap.TakenAt()
}

func (e *Engine) render() {
	e.observer.Render(newView(e.state))
}

func (e *Engine) startTicking() {
	if e.ticking {
		e.ticker.Stop()
	}
	e.ticker.Start()
	e.ticking = true
}

func (e *Engine) stopTicking() {
	if !e.ticking {
		return
	}
	e.ticker.Stop()
	e.ticking = false
}

func (e *Engine) normalize(cfg models.Configuration) models.Configuration {
	goal := config.CoerceSessionGoal(cfg.SessionGoal)
	if goal != cfg.SessionGoal {
		e.log.Warn().Int("goal", cfg.SessionGoal).Int("coerced", goal).Msg("session goal out of range")
	}

	key := cfg.PresetKey
	preset, err := e.presets.Lookup(key)
	if err != nil {
		key = config.DefaultPresetKey
		if _, ok := e.presets[key]; !ok {
			key = e.presets.Keys()[0]
		}
		preset = e.presets[key]
		e.log.Warn().Err(err).Str("fallback", key).Msg("preset")
	}
	return models.Configuration{PresetKey: key, Preset: preset, SessionGoal: goal}
}

func freshState(cfg models.Configuration) models.State {
	return models.State{
		Phase:            models.PhaseWork,
		RemainingSeconds: cfg.Preset.Seconds(models.PhaseWork),
		Config:           cfg,
	}
}
