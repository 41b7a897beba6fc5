package testutil

import (
	"time"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/models"
)

// SnapshotBuilder provides fluent API for creating test snapshots.
type SnapshotBuilder struct {
	snap models.Snapshot
}

// NewSnapshot starts from a paused first work session of the default preset.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{
		snap: models.Snapshot{
			TotalSeconds: 25 * 60,
			CurrentMode:  models.PhaseWork,
			SessionGoal:  config.DefaultSessionGoal,
			SelectedMode: config.DefaultPresetKey,
			Timestamp:    time.Now().UnixMilli(),
		},
	}
}

func (b *SnapshotBuilder) Running() *SnapshotBuilder {
	b.snap.IsRunning = true
	return b
}

func (b *SnapshotBuilder) InBreak() *SnapshotBuilder {
	b.snap.CurrentMode = models.PhaseBreak
	return b
}

func (b *SnapshotBuilder) WithRemaining(seconds int) *SnapshotBuilder {
	b.snap.TotalSeconds = seconds
	return b
}

func (b *SnapshotBuilder) WithCompleted(n int) *SnapshotBuilder {
	b.snap.SessionsCompleted = n
	return b
}

func (b *SnapshotBuilder) WithGoal(goal int) *SnapshotBuilder {
	b.snap.SessionGoal = goal
	return b
}

func (b *SnapshotBuilder) WithPreset(key string) *SnapshotBuilder {
	b.snap.SelectedMode = key
	return b
}

func (b *SnapshotBuilder) TakenAt(t time.Time) *SnapshotBuilder {
	b.snap.Timestamp = t.UnixMilli()
	return b
}

func (b *SnapshotBuilder) Build() models.Snapshot {
	return b.snap
}

// SessionRecordBuilder provides fluent API for creating history rows.
type SessionRecordBuilder struct {
	rec models.SessionRecord
}

func NewSessionRecord() *SessionRecordBuilder {
	return &SessionRecordBuilder{
		rec: models.SessionRecord{
			Phase:          models.PhaseWork,
			PresetKey:      config.DefaultPresetKey,
			PlannedSeconds: 25 * 60,
			Ordinal:        1,
			Goal:           config.DefaultSessionGoal,
			EndedAt:        time.Now(),
		},
	}
}

func (b *SessionRecordBuilder) Break(seconds int) *SessionRecordBuilder {
	b.rec.Phase = models.PhaseBreak
	b.rec.PlannedSeconds = seconds
	return b
}

func (b *SessionRecordBuilder) WithPlanned(seconds int) *SessionRecordBuilder {
	b.rec.PlannedSeconds = seconds
	return b
}

func (b *SessionRecordBuilder) WithOrdinal(ordinal, goal int) *SessionRecordBuilder {
	b.rec.Ordinal = ordinal
	b.rec.Goal = goal
	return b
}

func (b *SessionRecordBuilder) EndedAt(t time.Time) *SessionRecordBuilder {
	b.rec.EndedAt = t
	return b
}

func (b *SessionRecordBuilder) Build() models.SessionRecord {
	return b.rec
}
