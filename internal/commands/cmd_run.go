package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/timer"
	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"
)

var errUnknownInput = errors.New("unknown command")

type RunCmd struct {
	flags *Flags
	app   *App

	// flags
	autostart bool
	mute      bool
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags, app *App) *RunCmd {
	return &RunCmd{flags: flags, app: app}
}

// Register adds the run command to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run the timer without the full-screen interface",
		UsageText: "pomo run [--start] [--mute]",
		Description: `Runs the timer in the foreground, printing a status line on every
minute and phase change. Commands are read from stdin, one per line:

  s         start or pause
  r         reset
  p <id>    switch preset (paused only)
  g <n>     set session goal (paused only)
  q         save and quit

SIGINT and SIGTERM save a running timer before exiting.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "start",
				Usage:       "start the timer immediately if it is paused",
				Destination: &cmd.autostart,
			},
			&cli.BoolFlag{
				Name:        "mute",
				Usage:       "disable the terminal bell on phase changes",
				Sources:     cli.EnvVars("POMO_MUTE"),
				Destination: &cmd.mute,
			},
		},
		Action: cmd.run,
	})
	return app
}

// Run executes the headless timer. Exported for use as default command.
func (cmd *RunCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := c.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	return cmd.serve(ctx, c.Root().Reader, out)
}

// serve runs the timer against in and out until quit, EOF plus
// cancellation, or ctx ends.
func (cmd *RunCmd) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if in == nil {
		in = os.Stdin
	}
	out = &lockedWriter{w: out}
	obs := newLineObserver(out, cmd.app.Settings.Sound && !cmd.mute)
	ticker := timer.NewIntervalTicker(config.TickInterval)

	opts := cmd.app.engineOptions()
	opts.Observer = obs
	opts.Ticker = ticker
	engine := timer.New(opts)

	runner := timer.NewRunner(engine, ticker, cmd.app.Logger.With().Str("cmp", "runner").Logger())
	runner.OnReject = func(_ timer.Command, err error) {
		_, _ = fmt.Fprintf(out, "! %v\n", err)
	}

	cmds := make(chan timer.Command)
	go readCommands(ctx, in, cmds, out)

	runner.Autostart = cmd.autostart
	return runner.Run(ctx, cmds)
}

// readCommands parses stdin lines into commands until EOF or ctx ends.
func readCommands(ctx context.Context, in io.Reader, cmds chan<- timer.Command, out io.Writer) {
	defer close(cmds)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c, err := parseCommand(line)
		if err != nil {
			_, _ = fmt.Fprintf(out, "! %v\n", err)
			continue
		}
		select {
		case cmds <- c:
		case <-ctx.Done():
			return
		}
		if c.Kind == timer.CmdQuit {
			return
		}
	}
}

func parseCommand(line string) (timer.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return timer.Command{}, errUnknownInput
	}
	arg := strings.Join(fields[1:], " ")
	switch strings.ToLower(fields[0]) {
	case "s", "start", "pause", "toggle":
		return timer.Command{Kind: timer.CmdToggle}, nil
	case "r", "reset":
		return timer.Command{Kind: timer.CmdReset}, nil
	case "p", "preset":
		if arg == "" {
			return timer.Command{}, errors.New("preset: missing id")
		}
		return timer.Command{Kind: timer.CmdPreset, Arg: arg}, nil
	case "g", "goal":
		if arg == "" {
			return timer.Command{}, errors.New("goal: missing number")
		}
		return timer.Command{Kind: timer.CmdGoal, Arg: arg}, nil
	case "q", "quit", "exit":
		return timer.Command{Kind: timer.CmdQuit}, nil
	}
	return timer.Command{}, fmt.Errorf("%w %q", errUnknownInput, fields[0])
}

// lineObserver prints a status line whenever the displayed state changes
// beyond the seconds digit.
type lineObserver struct {
	w     io.Writer
	sound bool
	last  string
}

func newLineObserver(w io.Writer, sound bool) *lineObserver {
	return &lineObserver{w: w, sound: sound}
}

func (o *lineObserver) Render(v timer.View) {
	s := v.State
	key := fmt.Sprintf("%s|%t|%d|%s|%d", s.Phase, s.Running, s.SessionsCompleted, s.Config.PresetKey, s.Config.SessionGoal)
	if key == o.last && s.RemainingSeconds%60 != 0 {
		return
	}
	o.last = key
	state := "paused"
	if s.Running {
		state = "running"
	}
	_, _ = fmt.Fprintf(o.w, "%-5s %s  %s  [%s, %s]\n", v.Phase, v.Clock, v.Progress, s.Config.PresetKey, state)
}

func (o *lineObserver) SettingsLocked(bool) {}

func (o *lineObserver) PlayAlert() {
	if o.sound {
		_, _ = io.WriteString(o.w, string(rune(ansi.BEL)))
	}
}

func (o *lineObserver) GoalReached(int) {
	_, _ = fmt.Fprintln(o.w, config.CompletionMessage)
}

// lockedWriter serializes writes from the runner and the stdin reader.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
