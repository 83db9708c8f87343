package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// The event log is an append-only audit trail of committed placement
// operations, kept in sqlite next to the snapshot. It is strictly
// best-effort: the snapshot is the source of truth, and a failure to append
// never fails the mutation that triggered it.

type Event struct {
	ID       int64           `json:"id"`
	TS       time.Time       `json:"ts"`
	Type     string          `json:"type"`
	EntityID string          `json:"entityId"`
	Payload  json.RawMessage `json:"payload"`
}

func (s Store) eventLogPath() string {
	return filepath.Join(s.Dir, "events.sqlite")
}

func (s Store) openEventLog(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.eventLogPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts_unixms INTEGER NOT NULL,
		type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		payload_json TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// AppendEvent records one committed operation. Callers ignore the returned
// error except to log it.
func (s Store) AppendEvent(ctx context.Context, typ, entityID string, payload any) error {
	db, err := s.openEventLog(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	b, err := json.Marshal(payload)
	if err != nil {
		b = []byte("null")
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO events(ts_unixms, type, entity_id, payload_json) VALUES(?, ?, ?, ?)`,
		time.Now().UTC().UnixMilli(), typ, entityID, string(b))
	return err
}

// ReadEvents returns events oldest-first. limit <= 0 means all.
func (s Store) ReadEvents(ctx context.Context, limit int) ([]Event, error) {
	db, err := s.openEventLog(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, ts_unixms, type, entity_id, payload_json FROM events ORDER BY id ASC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var (
			ev      Event
			tsMs    int64
			payload string
		)
		if err := rows.Scan(&ev.ID, &tsMs, &ev.Type, &ev.EntityID, &payload); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(tsMs).UTC()
		payload = strings.TrimSpace(payload)
		if payload == "" {
			payload = "null"
		}
		ev.Payload = json.RawMessage(payload)
		out = append(out, ev)
	}
	return out, rows.Err()
}
