package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akyairhashvil/pomo/internal/timer"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type StatusCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
}

// NewStatusCmd creates a new status command
func NewStatusCmd(flags *Flags, app *App) *StatusCmd {
	return &StatusCmd{flags: flags, app: app}
}

// Register adds the status command to the application
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "status",
		Usage:     "Show the saved timer",
		UsageText: "pomo status [--json]",
		Description: `Shows the saved timer as it would look if resumed now: a running timer
has the time since it was saved subtracted. Storage is not modified.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

type statusInfo struct {
	Saved             bool       `json:"saved"`
	SavedAt           *time.Time `json:"savedAt,omitempty"`
	Phase             string     `json:"phase"`
	Label             string     `json:"label"`
	Clock             string     `json:"clock"`
	RemainingSeconds  int        `json:"remainingSeconds"`
	Running           bool       `json:"running"`
	SessionsCompleted int        `json:"sessionsCompleted"`
	SessionGoal       int        `json:"sessionGoal"`
	Session           string     `json:"session"`
	Preset            string     `json:"preset"`
}

func (cmd *StatusCmd) run(ctx context.Context, c *cli.Command) error {
	info, err := cmd.status(ctx)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("encode status: %w", err)
		}
		return nil
	}

	state := "paused"
	if info.Running {
		state = "running"
	}
	_, _ = fmt.Fprintf(out, "%s %s (%s)\n", info.Label, info.Clock, state)
	_, _ = fmt.Fprintf(out, "%s, preset %s\n", info.Session, info.Preset)
	if !info.Saved {
		_, _ = fmt.Fprintln(out, "No saved timer.")
	}
	return nil
}

// status restores the saved snapshot into a scratch engine.
func (cmd *StatusCmd) status(ctx context.Context) (statusInfo, error) {
	opts := cmd.app.engineOptions()
	opts.Store = timer.NewMemoryStore()
	opts.History = nil
	engine := timer.New(opts)

	saved := false
	snap, err := cmd.app.Snapshots.Load(ctx)
	switch {
	case err == nil:
		saved = true
		engine.RestoreSnapshot(ctx, snap)
	case errors.Is(err, timer.ErrNoSnapshot):
	default:
		log.Warn().Err(err).Msg("status: unreadable snapshot")
	}

	v := engine.View()
	s := v.State
	info := statusInfo{
		Saved:             saved,
		Phase:             string(s.Phase),
		Label:             v.Phase,
		Clock:             v.Clock,
		RemainingSeconds:  s.RemainingSeconds,
		Running:           s.Running,
		SessionsCompleted: s.SessionsCompleted,
		SessionGoal:       s.Config.SessionGoal,
		Session:           v.Progress,
		Preset:            s.Config.PresetKey,
	}
	if saved {
		at := snap.TakenAt()
		info.SavedAt = &at
	}
	return info, nil
}
