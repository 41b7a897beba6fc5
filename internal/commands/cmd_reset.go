package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type ResetCmd struct {
	flags *Flags
	app   *App
}

// NewResetCmd creates a new reset command
func NewResetCmd(flags *Flags, app *App) *ResetCmd {
	return &ResetCmd{flags: flags, app: app}
}

// Register adds the reset command to the application
func (cmd *ResetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "reset",
		Usage:       "Discard the saved timer",
		UsageText:   "pomo reset",
		Description: "Clears the saved snapshot so the next start begins at the first work session. History is kept.",
		Action:      cmd.run,
	})
	return app
}

func (cmd *ResetCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.app.Snapshots.Clear(ctx); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	_, _ = fmt.Fprintln(c.Root().Writer, "Timer reset.")
	return nil
}
