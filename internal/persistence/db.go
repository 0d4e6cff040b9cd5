// Package persistence stores simulation snapshots in SQLite. It consumes
// the engine's snapshot boundary — the core stays disk-free; this package
// is the save subsystem's side of the line.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/torvik/ashfall/internal/engine"
)

// DB wraps a SQLite connection for snapshot storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		day INTEGER NOT NULL,
		phase TEXT NOT NULL,
		state TEXT NOT NULL,
		saved_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot upserts a snapshot into a named slot.
func (db *DB) SaveSnapshot(slot string, sd engine.SaveData) error {
	raw, err := json.Marshal(sd)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT INTO saves (slot, day, phase, state, saved_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(slot) DO UPDATE SET
			day = excluded.day,
			phase = excluded.phase,
			state = excluded.state,
			saved_at = excluded.saved_at`,
		slot, sd.Clock.Day, sd.Clock.Phase.String(), string(raw))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	slog.Info("snapshot saved", "slot", slot, "day", sd.Clock.Day, "phase", sd.Clock.Phase)
	return nil
}

// LoadSnapshot reads a slot. The bool reports whether the slot exists.
func (db *DB) LoadSnapshot(slot string) (engine.SaveData, bool, error) {
	var raw string
	err := db.conn.Get(&raw, `SELECT state FROM saves WHERE slot = ?`, slot)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.SaveData{}, false, nil
	}
	if err != nil {
		return engine.SaveData{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	var sd engine.SaveData
	if err := json.Unmarshal([]byte(raw), &sd); err != nil {
		return engine.SaveData{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return sd, true, nil
}

// Slots lists saved slot names, newest first.
func (db *DB) Slots() ([]string, error) {
	var slots []string
	if err := db.conn.Select(&slots, `SELECT slot FROM saves ORDER BY saved_at DESC`); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// SetMeta stores a metadata key/value pair.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, `SELECT value FROM meta WHERE key = ?`, key)
	if err != nil {
		return "", err
	}
	return value, nil
}
