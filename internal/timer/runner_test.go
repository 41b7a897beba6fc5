package timer

import (
	"context"
	"testing"
	"time"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, store *MemoryStore) (*Runner, *Engine) {
	t.Helper()
	ticker := NewIntervalTicker(time.Hour)
	engine := New(Options{
		Presets: config.DefaultPresets(),
		Config:  models.Configuration{PresetKey: "25/5", SessionGoal: 4},
		Store:   store,
		Ticker:  ticker,
	})
	return NewRunner(engine, ticker, zerolog.Nop()), engine
}

func TestIntervalTickerChannelNilWhenStopped(t *testing.T) {
	tk := NewIntervalTicker(time.Hour)
	assert.Nil(t, tk.C())
	tk.Start()
	assert.NotNil(t, tk.C())
	first := tk.C()
	tk.Start()
	assert.NotEqual(t, first, tk.C())
	tk.Stop()
	assert.Nil(t, tk.C())
}

func TestDispatchRejectsSettingsWhileRunning(t *testing.T) {
	ctx := context.Background()
	r, e := newTestRunner(t, NewMemoryStore())
	t.Cleanup(r.ticker.Stop)

	require.NoError(t, r.Dispatch(ctx, Command{Kind: CmdToggle}))
	require.True(t, e.State().Running)

	assert.ErrorIs(t, r.Dispatch(ctx, Command{Kind: CmdGoal, Arg: "2"}), ErrSettingsLocked)
	assert.ErrorIs(t, r.Dispatch(ctx, Command{Kind: CmdPreset, Arg: "50/10"}), ErrSettingsLocked)
	assert.Equal(t, 4, e.State().Config.SessionGoal)

	require.NoError(t, r.Dispatch(ctx, Command{Kind: CmdToggle}))
	require.NoError(t, r.Dispatch(ctx, Command{Kind: CmdGoal, Arg: "2"}))
	assert.Equal(t, 2, e.State().Config.SessionGoal)
	assert.Error(t, r.Dispatch(ctx, Command{Kind: CmdGoal, Arg: "two"}))
	assert.ErrorIs(t, r.Dispatch(ctx, Command{Kind: CmdPreset, Arg: "nope"}), config.ErrUnknownPreset)
	require.NoError(t, r.Dispatch(ctx, Command{Kind: CmdPreset, Arg: "50/10"}))
	assert.Equal(t, 50*60, e.State().RemainingSeconds)
}

func TestRunPersistsRunningStateOnCancel(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRunner(t, store)
	ctx, cancel := context.WithCancel(context.Background())
	cmds := make(chan Command)
	done := make(chan error, 1)

	go func() { done <- r.Run(ctx, cmds) }()
	cmds <- Command{Kind: CmdToggle}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, saved.IsRunning)
	assert.Nil(t, r.ticker.C())
}

func TestRunQuitCommand(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRunner(t, store)
	cmds := make(chan Command, 2)
	cmds <- Command{Kind: CmdGoal, Arg: "3"}
	cmds <- Command{Kind: CmdQuit}

	require.NoError(t, r.Run(context.Background(), cmds))
	assert.Nil(t, store.Raw(), "quitting while paused stores nothing")
}

func TestRunReportsRejectedCommands(t *testing.T) {
	r, _ := newTestRunner(t, NewMemoryStore())
	var rejected []Command
	r.OnReject = func(cmd Command, err error) { rejected = append(rejected, cmd) }
	cmds := make(chan Command, 3)
	cmds <- Command{Kind: CmdToggle}
	cmds <- Command{Kind: CmdGoal, Arg: "9"}
	cmds <- Command{Kind: CmdQuit}

	require.NoError(t, r.Run(context.Background(), cmds))
	require.Len(t, rejected, 1)
	assert.Equal(t, CmdGoal, rejected[0].Kind)
}
