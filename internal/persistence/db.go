// Package persistence provides SQLite-backed storage for generated readings
// and reports. The computation path never requires the database; it is a
// cache and history for narrative output.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection.
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
	CREATE TABLE IF NOT EXISTS readings (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		birth TEXT NOT NULL,
		sex INTEGER NOT NULL,
		time_known INTEGER NOT NULL,
		payload_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		birth_a TEXT NOT NULL,
		birth_b TEXT NOT NULL,
		relationship TEXT NOT NULL,
		overall REAL NOT NULL,
		rating TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS service_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_readings_birth ON readings(birth, kind);
	CREATE INDEX IF NOT EXISTS idx_reports_pair ON reports(birth_a, birth_b, relationship);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Reading is one stored reading row.
type Reading struct {
	ID        string    `db:"id" json:"id"`
	Kind      string    `db:"kind" json:"kind"`
	Birth     string    `db:"birth" json:"birth"`
	Sex       int       `db:"sex" json:"sex"`
	TimeKnown int       `db:"time_known" json:"time_known"`
	Payload   string    `db:"payload_json" json:"payload_json"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SaveReading stores a generated reading payload and returns its id.
func (db *DB) SaveReading(kind string, birth time.Time, sex int, timeKnown bool, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal reading: %w", err)
	}

	id := uuid.NewString()
	tk := 0
	if timeKnown {
		tk = 1
	}
	_, err = db.conn.Exec(
		`INSERT INTO readings (id, kind, birth, sex, time_known, payload_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, kind, birth.UTC().Format(time.RFC3339), sex, tk, string(body),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert reading: %w", err)
	}
	return id, nil
}

// SaveReport stores a generated compatibility report and returns its id.
func (db *DB) SaveReport(birthA, birthB time.Time, relationship string, overall float64, rating string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	id := uuid.NewString()
	_, err = db.conn.Exec(
		`INSERT INTO reports (id, birth_a, birth_b, relationship, overall, rating, payload_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, birthA.UTC().Format(time.RFC3339), birthB.UTC().Format(time.RFC3339),
		relationship, overall, rating, string(body),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}
	return id, nil
}

// RecentReadings returns the most recent N readings of a kind.
func (db *DB) RecentReadings(kind string, limit int) ([]Reading, error) {
	rows, err := db.conn.Queryx(
		`SELECT id, kind, birth, sex, time_known, payload_json, created_at
		 FROM readings WHERE kind = ? ORDER BY created_at DESC LIMIT ?`, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []Reading
	for rows.Next() {
		var r Reading
		var created string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Birth, &r.Sex, &r.TimeKnown, &r.Payload, &created); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			r.CreatedAt = t
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// PurgeOlderThan deletes readings and reports created before the cutoff.
// Returns the number of rows removed.
func (db *DB) PurgeOlderThan(cutoff time.Time) (int64, error) {
	ts := cutoff.UTC().Format(time.RFC3339)

	tx, err := db.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var total int64
	for _, table := range []string{"readings", "reports"} {
		res, err := tx.Exec("DELETE FROM "+table+" WHERE created_at < ?", ts)
		if err != nil {
			return 0, err
		}
		n, _ := res.RowsAffected()
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	slog.Info("purged stored output", "rows", total, "cutoff", ts)
	return total, nil
}

// SaveMeta stores a key-value pair in service metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO service_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM service_meta WHERE key = ?", key)
	return value, err
}
