package timer

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/akyairhashvil/pomo/internal/models"
)

// MemoryStore keeps the encoded snapshot in memory. It is used where no
// durable storage is wanted, e.g. read-only status reports and tests.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put replaces the raw stored record.
func (m *MemoryStore) Put(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// Raw returns a copy of the stored record, or nil if none.
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil
	}
	return append([]byte(nil), m.data...)
}

func (m *MemoryStore) Load(ctx context.Context) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return models.Snapshot{}, ErrNoSnapshot
	}
	return models.ParseSnapshot(m.data)
}

func (m *MemoryStore) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

var _ Store = (*MemoryStore)(nil)
