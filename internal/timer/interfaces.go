package timer

import (
	"context"
	"errors"
	"time"

	"github.com/akyairhashvil/pomo/internal/models"
)

var (
	// ErrNoSnapshot is returned by a Store that holds no saved state.
	ErrNoSnapshot = errors.New("no saved snapshot")
	// ErrSettingsLocked is returned by front ends that reject configuration
	// edits while the timer is running.
	ErrSettingsLocked = errors.New("settings are locked while the timer is running")
)

// Store persists the single keyed snapshot record.
//
//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=timer
type Store interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Save(ctx context.Context, snap models.Snapshot) error
	Clear(ctx context.Context) error
}

// History receives every completed phase.
type History interface {
	Record(ctx context.Context, rec models.SessionRecord) error
}

// Observer receives the engine's presentation side effects.
type Observer interface {
	Render(v View)
	SettingsLocked(locked bool)
	PlayAlert()
	GoalReached(goal int)
}

// Ticker is the periodic one-second tick source driving Engine.Tick.
type Ticker interface {
	Start()
	Stop()
}

// Clock provides the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock implementation using the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

type nopObserver struct{}

func (nopObserver) Render(View)         {}
func (nopObserver) SettingsLocked(bool) {}
func (nopObserver) PlayAlert()          {}
func (nopObserver) GoalReached(int)     {}

type nopTicker struct{}

func (nopTicker) Start() {}
func (nopTicker) Stop()  {}

type nopHistory struct{}

func (nopHistory) Record(context.Context, models.SessionRecord) error { return nil }
