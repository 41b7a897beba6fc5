package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Phase is the timer's current activity.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	return p == PhaseWork || p == PhaseBreak
}

// Preset is a work/break pair in minutes.
type Preset struct {
	Work  int `yaml:"work" json:"work"`
	Break int `yaml:"break" json:"break"`
}

// Seconds returns the configured duration of the given phase in seconds.
func (p Preset) Seconds(phase Phase) int {
	if phase == PhaseBreak {
		return p.Break * 60
	}
	return p.Work * 60
}

// Configuration is fixed for the lifetime of one cycle of sessions.
type Configuration struct {
	PresetKey   string
	Preset      Preset
	SessionGoal int
}

// State is the mutable timer entity.
type State struct {
	Phase             Phase
	RemainingSeconds  int
	SessionsCompleted int
	Running           bool
	Config            Configuration
	LastPersistedAt   time.Time
}

// SessionOrdinal is the number of the session in progress, clamped to the goal.
func (s State) SessionOrdinal() int {
	current := s.SessionsCompleted
	if s.Phase == PhaseWork {
		current++
	}
	if current > s.Config.SessionGoal {
		return s.Config.SessionGoal
	}
	return current
}

// ErrInvalidSnapshot marks a persisted record that cannot be decoded.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the persisted form of State.
type Snapshot struct {
	TotalSeconds      int    `json:"totalSeconds"`
	IsRunning         bool   `json:"isRunning"`
	CurrentMode       Phase  `json:"currentMode"`
	SessionsCompleted int    `json:"sessionsCompleted"`
	SessionGoal       int    `json:"sessionGoal"`
	SelectedMode      string `json:"selectedMode"`
	Timestamp         int64  `json:"timestamp"`
}

// TakenAt returns the snapshot timestamp as a time.
func (s Snapshot) TakenAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Validate checks the shape constraints of the persisted format.
func (s Snapshot) Validate() error {
	switch {
	case s.TotalSeconds < 0:
		return fmt.Errorf("%w: negative totalSeconds %d", ErrInvalidSnapshot, s.TotalSeconds)
	case !s.CurrentMode.Valid():
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSnapshot, s.CurrentMode)
	case s.SessionsCompleted < 0:
		return fmt.Errorf("%w: negative sessionsCompleted %d", ErrInvalidSnapshot, s.SessionsCompleted)
	case s.SessionGoal < 1:
		return fmt.Errorf("%w: sessionGoal %d", ErrInvalidSnapshot, s.SessionGoal)
	case s.SessionsCompleted >= s.SessionGoal:
		return fmt.Errorf("%w: %d sessions completed of goal %d", ErrInvalidSnapshot, s.SessionsCompleted, s.SessionGoal)
	case s.SelectedMode == "":
		return fmt.Errorf("%w: missing selectedMode", ErrInvalidSnapshot)
	case s.Timestamp <= 0:
		return fmt.Errorf("%w: missing timestamp", ErrInvalidSnapshot)
	}
	return nil
}

// ParseSnapshot decodes and validates a persisted record.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// SessionRecord is one completed phase in the history log.
type SessionRecord struct {
	ID             int64
	Phase          Phase
	PresetKey      string
	PlannedSeconds int
	Ordinal        int
	Goal           int
	EndedAt        time.Time
}
