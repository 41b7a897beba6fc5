package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/database"
	"github.com/akyairhashvil/pomo/internal/report"
	"github.com/akyairhashvil/pomo/internal/util"
	"github.com/urfave/cli/v3"
)

type ReportCmd struct {
	flags *Flags
	app   *App

	// flags
	out   string
	since string
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags, app *App) *ReportCmd {
	return &ReportCmd{flags: flags, app: app}
}

// Register adds the report command to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Export a PDF summary of work sessions",
		UsageText: "pomo report [--out FILE] [--since DATE]",
		Description: `Writes a PDF with work sessions and focus time grouped by day.
The default output is pomo_report_<date>.pdf in the documents directory.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file",
				Destination: &cmd.out,
			},
			&cli.StringFlag{
				Name:        "since",
				Usage:       "only phases ended on or after DATE (YYYY-MM-DD, \"today\" or a duration like 168h)",
				Destination: &cmd.since,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ReportCmd) run(ctx context.Context, c *cli.Command) error {
	now := cmd.app.Clock.Now()
	since, err := parseSince(cmd.since, now)
	if err != nil {
		return err
	}

	records, err := cmd.app.History.ListSessions(ctx, database.HistoryQuery{Since: since})
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	path := cmd.out
	if path == "" {
		path = filepath.Join(util.ReportsDir(config.AppName), report.DefaultFileName(now))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := report.WritePDF(path, records, since, time.Local); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	absPath, _ := filepath.Abs(path)
	l := util.Component("report")
	l.Info().Str("path", absPath).Int("records", len(records)).Msg("report written")
	_, _ = fmt.Fprintf(c.Root().Writer, "PDF Report generated: %s\n", absPath)
	return nil
}
