package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/akyairhashvil/pomo/internal/database"
	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/akyairhashvil/pomo/internal/timer"
	"github.com/urfave/cli/v3"
)

type HistoryCmd struct {
	flags *Flags
	app   *App

	// flags
	limit    int
	since    string
	workOnly bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags, app *App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "List completed phases",
		UsageText: "pomo history [--limit N] [--since DATE] [--work]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of rows (0 for all)",
				Value:       20,
				Destination: &cmd.limit,
			},
			&cli.StringFlag{
				Name:        "since",
				Usage:       "only phases ended on or after DATE (YYYY-MM-DD, \"today\" or a duration like 48h)",
				Destination: &cmd.since,
			},
			&cli.BoolFlag{
				Name:        "work",
				Usage:       "only work sessions",
				Destination: &cmd.workOnly,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	since, err := parseSince(cmd.since, cmd.app.Clock.Now())
	if err != nil {
		return err
	}
	q := database.HistoryQuery{Since: since, Limit: cmd.limit}
	if cmd.workOnly {
		q.Phase = models.PhaseWork
	}

	records, err := cmd.app.History.ListSessions(ctx, q)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No sessions recorded")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ENDED\tPHASE\tLENGTH\tPRESET\tSESSION")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\n",
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			timer.PhaseLabel(r.Phase),
			timer.FormatClock(r.PlannedSeconds),
			r.PresetKey,
			r.Ordinal, r.Goal)
	}
	return w.Flush()
}
