package database

import (
	"context"
	"strings"
	"time"

	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/akyairhashvil/pomo/internal/timer"
)

// HistoryQuery filters ListSessions. Zero values mean no filter.
type HistoryQuery struct {
	Since time.Time
	Until time.Time
	Phase models.Phase
	Limit int
}

// HistoryStore records completed phases in the sessions table.
type HistoryStore struct {
	db *Database
}

func NewHistoryStore(db *Database) *HistoryStore {
	return &HistoryStore{db: db}
}

// Record inserts one completed phase.
func (h *HistoryStore) Record(ctx context.Context, rec models.SessionRecord) error {
	_, err := h.db.DB.ExecContext(ctx, `
		INSERT INTO sessions (phase, preset, planned_seconds, ordinal, goal, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(rec.Phase), rec.PresetKey, rec.PlannedSeconds, rec.Ordinal, rec.Goal, rec.EndedAt.UnixMilli())
	return wrapSessionErr("record", err)
}

// ListSessions returns recorded phases matching q, newest first.
func (h *HistoryStore) ListSessions(ctx context.Context, q HistoryQuery) ([]models.SessionRecord, error) {
	var (
		where []string
		args  []any
	)
	if !q.Since.IsZero() {
		where = append(where, "ended_at >= ?")
		args = append(args, q.Since.UnixMilli())
	}
	if !q.Until.IsZero() {
		where = append(where, "ended_at < ?")
		args = append(args, q.Until.UnixMilli())
	}
	if q.Phase != "" {
		where = append(where, "phase = ?")
		args = append(args, string(q.Phase))
	}

	query := "SELECT id, phase, preset, planned_seconds, ordinal, goal, ended_at FROM sessions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY ended_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := h.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapSessionErr("list", err)
	}
	defer rows.Close()

	var records []models.SessionRecord
	for rows.Next() {
		var (
			r       models.SessionRecord
			phase   string
			endedAt int64
		)
		if err := rows.Scan(&r.ID, &phase, &r.PresetKey, &r.PlannedSeconds, &r.Ordinal, &r.Goal, &endedAt); err != nil {
			return nil, wrapSessionErr("list", err)
		}
		r.Phase = models.Phase(phase)
		r.EndedAt = time.UnixMilli(endedAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapSessionErr("list", err)
	}
	return records, nil
}

var _ timer.History = (*HistoryStore)(nil)
