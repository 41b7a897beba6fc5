package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/akyairhashvil/pomo/internal/timer"
)

// SnapshotStore keeps the timer snapshot as a JSON value in the settings table.
type SnapshotStore struct {
	db  *Database
	key string
}

// NewSnapshotStore returns a store for the default snapshot key.
func NewSnapshotStore(db *Database) *SnapshotStore {
	return &SnapshotStore{db: db, key: config.SnapshotKey}
}

// Load returns timer.ErrNoSnapshot when no record exists and an error
// wrapping models.ErrInvalidSnapshot when the record cannot be decoded.
func (s *SnapshotStore) Load(ctx context.Context) (models.Snapshot, error) {
	raw, err := s.db.GetSetting(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return models.Snapshot{}, timer.ErrNoSnapshot
	}
	if err != nil {
		return models.Snapshot{}, err
	}
	return models.ParseSnapshot([]byte(raw))
}

func (s *SnapshotStore) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return wrapSettingErr("encode", s.key, err)
	}
	return s.db.SetSetting(ctx, s.key, string(data))
}

func (s *SnapshotStore) Clear(ctx context.Context) error {
	return s.db.DeleteSetting(ctx, s.key)
}

var _ timer.Store = (*SnapshotStore)(nil)
