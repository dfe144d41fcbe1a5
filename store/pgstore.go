package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Katemedoshi/SportsPal/profile"
	"github.com/Katemedoshi/SportsPal/workout"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	username TEXT PRIMARY KEY,
	data     JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS workout_ledgers (
	username TEXT PRIMARY KEY,
	entries  JSONB NOT NULL
);`

// Postgres persists state as jsonb documents keyed by username. Saves upsert
// every row inside one transaction, so a subsequent load sees either the full
// new state or the full old one.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres ensures the schema exists and returns a postgres-backed store.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// LoadProfiles implements profile.Storage.
func (p *Postgres) LoadProfiles() (map[string]profile.Profile, error) {
	rows, err := p.pool.Query(context.Background(), `SELECT username, data FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	profiles := map[string]profile.Profile{}
	for rows.Next() {
		var username string
		var data []byte
		if err := rows.Scan(&username, &data); err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		var prof profile.Profile
		if err := json.Unmarshal(data, &prof); err != nil {
			return nil, fmt.Errorf("decode profile for %s: %w", username, err)
		}
		profiles[username] = prof
	}
	return profiles, rows.Err()
}

// SaveProfiles implements profile.Storage.
func (p *Postgres) SaveProfiles(profiles map[string]profile.Profile) error {
	return p.upsertAll(`INSERT INTO profiles (username, data) VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET data = EXCLUDED.data`,
		func(yield func(string, any)) {
			for username, prof := range profiles {
				yield(username, prof)
			}
		})
}

// LoadWorkouts implements workout.Storage.
func (p *Postgres) LoadWorkouts() (map[string][]workout.Entry, error) {
	rows, err := p.pool.Query(context.Background(), `SELECT username, entries FROM workout_ledgers`)
	if err != nil {
		return nil, fmt.Errorf("query workout ledgers: %w", err)
	}
	defer rows.Close()

	workouts := map[string][]workout.Entry{}
	for rows.Next() {
		var username string
		var data []byte
		if err := rows.Scan(&username, &data); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		var entries []workout.Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode ledger for %s: %w", username, err)
		}
		workouts[username] = entries
	}
	return workouts, rows.Err()
}

// SaveWorkouts implements workout.Storage.
func (p *Postgres) SaveWorkouts(workouts map[string][]workout.Entry) error {
	return p.upsertAll(`INSERT INTO workout_ledgers (username, entries) VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET entries = EXCLUDED.entries`,
		func(yield func(string, any)) {
			for username, entries := range workouts {
				yield(username, entries)
			}
		})
}

func (p *Postgres) upsertAll(sql string, each func(yield func(string, any))) error {
	ctx := context.Background()
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var execErr error
	each(func(username string, doc any) {
		if execErr != nil {
			return
		}
		data, err := json.Marshal(doc)
		if err != nil {
			execErr = fmt.Errorf("encode doc for %s: %w", username, err)
			return
		}
		if _, err := tx.Exec(ctx, sql, username, data); err != nil {
			execErr = fmt.Errorf("upsert %s: %w", username, err)
		}
	})
	if execErr != nil {
		return execErr
	}
	return tx.Commit(ctx)
}

var (
	_ profile.Storage = (*Postgres)(nil)
	_ workout.Storage = (*Postgres)(nil)
)
