package commands

import (
	"context"
	"fmt"

	"github.com/akyairhashvil/pomo/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type TuiCmd struct {
	flags *Flags
	app   *App

	// flags
	theme string
	mute  bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "theme",
			Usage:       fmt.Sprintf("colour theme %v (overrides the config file)", tui.ThemeNames()),
			Sources:     cli.EnvVars("POMO_THEME"),
			Destination: &cmd.theme,
		},
		&cli.BoolFlag{
			Name:        "mute",
			Usage:       "disable the terminal bell on phase changes",
			Sources:     cli.EnvVars("POMO_MUTE"),
			Destination: &cmd.mute,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Run the interactive timer",
		UsageText: "pomo tui [--theme NAME] [--mute]",
		Description: `Opens the full-screen timer. A running timer saved by a previous
session is resumed with the time spent away subtracted.

Keys: space start/pause, r reset, p next preset, g set goal, +/- adjust goal,
? help, q quit. Preset and goal changes require the timer to be paused.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	settings := cmd.app.Settings
	theme := settings.Theme
	if cmd.theme != "" {
		theme = cmd.theme
	}

	opts := cmd.app.engineOptions()
	m := tui.New(tui.Options{
		Presets: opts.Presets,
		Config:  opts.Config,
		Store:   opts.Store,
		History: opts.History,
		Clock:   opts.Clock,
		Resume:  opts.Resume,
		Sound:   settings.Sound && !cmd.mute,
		Theme:   theme,
		Logger:  cmd.app.Logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		// A cancelled context kills the program before the quit key can
		// persist; do it here.
		m.Engine().Unload(context.WithoutCancel(ctx))
		return fmt.Errorf("run tui: %w", err)
	}
	log.Debug().Msg("tui exited")
	return nil
}
