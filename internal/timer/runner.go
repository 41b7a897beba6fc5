package timer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// IntervalTicker is a Ticker backed by time.Ticker. Its channel is nil while
// stopped, so a select on C blocks until Start.
type IntervalTicker struct {
	interval time.Duration
	t        *time.Ticker
}

func NewIntervalTicker(interval time.Duration) *IntervalTicker {
	return &IntervalTicker{interval: interval}
}

// Start replaces any running ticker with a fresh one.
func (t *IntervalTicker) Start() {
	t.Stop()
	t.t = time.NewTicker(t.interval)
}

func (t *IntervalTicker) Stop() {
	if t.t != nil {
		t.t.Stop()
		t.t = nil
	}
}

// C returns the current tick channel, or nil while stopped.
func (t *IntervalTicker) C() <-chan time.Time {
	if t.t == nil {
		return nil
	}
	return t.t.C
}

// CommandKind enumerates the inbound user commands.
type CommandKind int

const (
	CmdToggle CommandKind = iota
	CmdReset
	CmdPreset
	CmdGoal
	CmdQuit
)

// Command is one user command delivered to a Runner.
type Command struct {
	Kind CommandKind
	Arg  string
}

// Runner drives an Engine from a single goroutine: ticks and commands are
// handled one at a time, never concurrently.
type Runner struct {
	engine *Engine
	ticker *IntervalTicker
	log    zerolog.Logger

	// OnReject is called with commands refused by the runner, if set.
	OnReject func(cmd Command, err error)
	// Autostart starts a paused timer once saved state is restored.
	Autostart bool
}

// NewRunner returns a runner for engine. ticker must be the Ticker the
// engine was built with.
func NewRunner(engine *Engine, ticker *IntervalTicker, log zerolog.Logger) *Runner {
	return &Runner{engine: engine, ticker: ticker, log: log}
}

// Run restores saved state and processes ticks and commands until ctx is
// cancelled or a CmdQuit arrives. A final snapshot is persisted on exit if
// the timer is running.
func (r *Runner) Run(ctx context.Context, cmds <-chan Command) error {
	defer r.ticker.Stop()

	r.engine.Restore(ctx)
	if r.Autostart {
		r.engine.Start(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			r.engine.Unload(context.WithoutCancel(ctx))
			return nil
		case <-r.ticker.C():
			r.engine.Tick(ctx)
		case cmd, ok := <-cmds:
			if !ok {
				// Input closed; keep the countdown going until cancelled.
				cmds = nil
				continue
			}
			if cmd.Kind == CmdQuit {
				r.engine.Unload(ctx)
				return nil
			}
			if err := r.Dispatch(ctx, cmd); err != nil {
				r.log.Warn().Err(err).Int("kind", int(cmd.Kind)).Msg("command rejected")
				if r.OnReject != nil {
					r.OnReject(cmd, err)
				}
			}
		}
	}
}

// Dispatch applies a single command to the engine. Configuration commands
// are refused while the timer is running.
func (r *Runner) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CmdToggle:
		r.engine.Toggle(ctx)
	case CmdReset:
		r.engine.Reset(ctx, true)
	case CmdPreset:
		if r.engine.SettingsLocked() {
			return ErrSettingsLocked
		}
		if _, err := r.engine.Presets().Lookup(cmd.Arg); err != nil {
			return err
		}
		r.engine.SetPreset(ctx, cmd.Arg)
	case CmdGoal:
		if r.engine.SettingsLocked() {
			return ErrSettingsLocked
		}
		goal, err := strconv.Atoi(cmd.Arg)
		if err != nil {
			return fmt.Errorf("session goal %q: %w", cmd.Arg, err)
		}
		r.engine.SetSessionGoal(ctx, goal)
	case CmdQuit:
		r.engine.Unload(ctx)
	default:
		return fmt.Errorf("unknown command %d", cmd.Kind)
	}
	return nil
}
