package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/akyairhashvil/pomo/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T, ctx context.Context) *Database {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := Open(ctx, dbPath)
	require.NoError(t, err, "Open failed")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return db
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	require.NoError(t, db.Close())

	again, err := Open(ctx, db.Path())
	require.NoError(t, err, "Open second run failed")
	require.NoError(t, again.Close())
}

func TestSettingsCRUD(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)

	_, err := db.GetSetting(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "setting", opErr.Resource)

	require.NoError(t, db.SetSetting(ctx, "k", "v1"))
	require.NoError(t, db.SetSetting(ctx, "k", "v2"))
	got, err := db.GetSetting(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, db.DeleteSetting(ctx, "k"))
	_, err = db.GetSetting(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(setupTestDB(t, ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, timer.ErrNoSnapshot)

	snap := models.Snapshot{
		TotalSeconds:      1234,
		IsRunning:         true,
		CurrentMode:       models.PhaseBreak,
		SessionsCompleted: 2,
		SessionGoal:       4,
		SelectedMode:      "50/10",
		Timestamp:         time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC).UnixMilli(),
	}
	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, timer.ErrNoSnapshot)
	assert.NoError(t, store.Clear(ctx), "clearing twice is harmless")
}

func TestSnapshotStoreWireFormat(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	store := NewSnapshotStore(db)

	require.NoError(t, store.Save(ctx, models.Snapshot{
		TotalSeconds: 10, CurrentMode: models.PhaseWork, SessionGoal: 4, SelectedMode: "25/5", Timestamp: 1700000000000,
	}))
	raw, err := db.GetSetting(ctx, "pomodoroState")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"totalSeconds": 10,
		"isRunning": false,
		"currentMode": "work",
		"sessionsCompleted": 0,
		"sessionGoal": 4,
		"selectedMode": "25/5",
		"timestamp": 1700000000000
	}`, raw)
}

func TestSnapshotStoreCorruptRecord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	store := NewSnapshotStore(db)
	require.NoError(t, db.SetSetting(ctx, "pomodoroState", "{oops"))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, models.ErrInvalidSnapshot)
	assert.NotErrorIs(t, err, timer.ErrNoSnapshot)
}

func TestHistoryRecordAndList(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryStore(setupTestDB(t, ctx))
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for i, phase := range []models.Phase{models.PhaseWork, models.PhaseBreak, models.PhaseWork} {
		require.NoError(t, history.Record(ctx, models.SessionRecord{
			Phase:          phase,
			PresetKey:      "25/5",
			PlannedSeconds: 1500,
			Ordinal:        i/2 + 1,
			Goal:           4,
			EndedAt:        base.Add(time.Duration(i) * 30 * time.Minute),
		}))
	}

	all, err := history.ListSessions(ctx, HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].EndedAt.Equal(base.Add(time.Hour)), "newest first")
	assert.Equal(t, models.PhaseWork, all[0].Phase)
	assert.NotZero(t, all[0].ID)

	work, err := history.ListSessions(ctx, HistoryQuery{Phase: models.PhaseWork})
	require.NoError(t, err)
	assert.Len(t, work, 2)

	recent, err := history.ListSessions(ctx, HistoryQuery{Since: base.Add(time.Minute), Limit: 1})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.True(t, recent[0].EndedAt.Equal(base.Add(time.Hour)))

	window, err := history.ListSessions(ctx, HistoryQuery{Since: base, Until: base.Add(time.Hour)})
	require.NoError(t, err)
	assert.Len(t, window, 2)
}

func TestEngineWithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	engine := timer.New(timer.Options{
		Config:  models.Configuration{PresetKey: "25/5", SessionGoal: 4},
		Store:   NewSnapshotStore(db),
		History: NewHistoryStore(db),
	})
	engine.Restore(ctx)
	engine.Start(ctx)
	for i := 0; i < 25*60+1; i++ {
		engine.Tick(ctx)
	}
	engine.Pause(ctx)

	reloaded := timer.New(timer.Options{
		Config:  models.Configuration{PresetKey: "25/5", SessionGoal: 4},
		Store:   NewSnapshotStore(db),
		History: NewHistoryStore(db),
	})
	reloaded.Restore(ctx)
	assert.Equal(t, models.PhaseBreak, reloaded.State().Phase)
	assert.Equal(t, 1, reloaded.State().SessionsCompleted)
	assert.False(t, reloaded.State().Running)

	records, err := NewHistoryStore(db).ListSessions(ctx, HistoryQuery{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
