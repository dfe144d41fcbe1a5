package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Katemedoshi/SportsPal/profile"
	"github.com/Katemedoshi/SportsPal/workout"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	username TEXT PRIMARY KEY,
	data     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS workout_ledgers (
	username TEXT PRIMARY KEY,
	entries  TEXT NOT NULL
);`

// SQLite persists state in a single database file using the pure-Go driver,
// the default for single-host installs with no Postgres around. Same document
// schema as the Postgres store.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadProfiles implements profile.Storage.
func (s *SQLite) LoadProfiles() (map[string]profile.Profile, error) {
	rows, err := s.db.Query(`SELECT username, data FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	profiles := map[string]profile.Profile{}
	for rows.Next() {
		var username, data string
		if err := rows.Scan(&username, &data); err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		var prof profile.Profile
		if err := json.Unmarshal([]byte(data), &prof); err != nil {
			return nil, fmt.Errorf("decode profile for %s: %w", username, err)
		}
		profiles[username] = prof
	}
	return profiles, rows.Err()
}

// SaveProfiles implements profile.Storage.
func (s *SQLite) SaveProfiles(profiles map[string]profile.Profile) error {
	docs := make(map[string]any, len(profiles))
	for username, prof := range profiles {
		docs[username] = prof
	}
	return s.upsertAll(`INSERT INTO profiles (username, data) VALUES (?, ?)
		ON CONFLICT (username) DO UPDATE SET data = excluded.data`, docs)
}

// LoadWorkouts implements workout.Storage.
func (s *SQLite) LoadWorkouts() (map[string][]workout.Entry, error) {
	rows, err := s.db.Query(`SELECT username, entries FROM workout_ledgers`)
	if err != nil {
		return nil, fmt.Errorf("query workout ledgers: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	workouts := map[string][]workout.Entry{}
	for rows.Next() {
		var username, data string
		if err := rows.Scan(&username, &data); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		var entries []workout.Entry
		if err := json.Unmarshal([]byte(data), &entries); err != nil {
			return nil, fmt.Errorf("decode ledger for %s: %w", username, err)
		}
		workouts[username] = entries
	}
	return workouts, rows.Err()
}

// SaveWorkouts implements workout.Storage.
func (s *SQLite) SaveWorkouts(workouts map[string][]workout.Entry) error {
	docs := make(map[string]any, len(workouts))
	for username, entries := range workouts {
		docs[username] = entries
	}
	return s.upsertAll(`INSERT INTO workout_ledgers (username, entries) VALUES (?, ?)
		ON CONFLICT (username) DO UPDATE SET entries = excluded.entries`, docs)
}

func (s *SQLite) upsertAll(query string, docs map[string]any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for username, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode doc for %s: %w", username, err)
		}
		if _, err := tx.Exec(query, username, string(data)); err != nil {
			return fmt.Errorf("upsert %s: %w", username, err)
		}
	}
	return tx.Commit()
}

var (
	_ profile.Storage = (*SQLite)(nil)
	_ workout.Storage = (*SQLite)(nil)
)
