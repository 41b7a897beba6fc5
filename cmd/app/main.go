package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/akyairhashvil/pomo/internal/commands"
	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/database"
	"github.com/akyairhashvil/pomo/internal/tui"
	"github.com/akyairhashvil/pomo/internal/util"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func build() string {
	v, c, d := version, commit, date
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	tui.AppVersion, tui.GitCommit, tui.BuildTime = v, c, d
	return tui.VersionLabel()
}

func main() {
	loadDotEnv(".env")

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// loadDotEnv applies POMO_* variables from a .env file; a missing file is fine.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", path, err)
	}
}

func newApp() *cli.Command {
	var (
		logCloser func()
		db        *database.Database
		app       = &commands.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      config.AppName,
		Usage:     "Pomodoro timer for the terminal",
		UsageText: "pomo [global options] command [command options]",
		Description: `Alternates work and break phases until the session goal is reached.
The timer state is saved on pause, on every phase change and on exit, and a
running timer picks up where it left off, minus the time spent away.

Run 'pomo' with no arguments to open the interactive timer. When stdout is
not a terminal the headless timer is used instead.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("POMO_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/pomo.log)",
				Sources:     cli.EnvVars("POMO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("POMO_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("POMO_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := util.NewLogger(flags.LogLevel, flags.LogPath(), nil)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			settings, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if err := os.MkdirAll(flags.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}
			db, err = database.Open(ctx, flags.DBPath())
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			// Commands already hold a pointer to app.
			*app = *commands.NewApp(settings, db, logger)
			log.Debug().Str("db", db.Path()).Str("config", flags.ConfigPath).Msg("started")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if db != nil {
				if err := db.Close(); err != nil {
					util.LogError("failed to close database", err)
					return err
				}
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)
	runCmd := commands.NewRunCmd(flags, app)

	root = tuiCmd.Register(root)
	root = runCmd.Register(root)
	root = commands.NewStatusCmd(flags, app).Register(root)
	root = commands.NewResetCmd(flags, app).Register(root)
	root = commands.NewHistoryCmd(flags, app).Register(root)
	root = commands.NewReportCmd(flags, app).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'pomo --help' for usage", c.Args().First())
		}
		if !isTerminal(os.Stdout) {
			log.Info().Msg("stdout is not a terminal, running headless")
			return runCmd.Run(ctx, c)
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
