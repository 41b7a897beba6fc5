package commands

import (
	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/database"
	"github.com/akyairhashvil/pomo/internal/timer"
	"github.com/rs/zerolog"
)

// App carries the dependencies built in the root Before hook. Commands hold
// a pointer to it before it is populated.
type App struct {
	Settings  config.Settings
	DB        *database.Database
	Snapshots timer.Store
	History   *database.HistoryStore
	Clock     timer.Clock
	Logger    zerolog.Logger
}

func NewApp(settings config.Settings, db *database.Database, logger zerolog.Logger) *App {
	return &App{
		Settings:  settings,
		DB:        db,
		Snapshots: database.NewSnapshotStore(db),
		History:   database.NewHistoryStore(db),
		Clock:     timer.SystemClock,
		Logger:    logger,
	}
}

// engineOptions returns the engine wiring shared by the timer commands.
func (a *App) engineOptions() timer.Options {
	log := a.Logger.With().Str("cmp", "timer").Logger()
	opts := timer.Options{
		Presets: a.Settings.Presets,
		Config:  a.Settings.Configuration(),
		Store:   a.Snapshots,
		Clock:   a.Clock,
		Resume:  a.Settings.Resume,
		Logger:  &log,
	}
	if a.History != nil {
		opts.History = a.History
	}
	return opts
}
