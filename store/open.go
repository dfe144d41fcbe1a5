package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Katemedoshi/SportsPal/profile"
	"github.com/Katemedoshi/SportsPal/workout"
)

// Store is the full persistence surface: both the profile and workout ports.
type Store interface {
	profile.Storage
	workout.Storage
}

// Open picks the backend from the configured locations: Postgres when
// databaseURL is set, else SQLite when sqlitePath is set, else JSON files in
// dataDir. Every process that touches state (api, worker, CLI) selects its
// backend through here so they never disagree on where the data lives. The
// returned cleanup releases the backend.
func Open(ctx context.Context, databaseURL, sqlitePath, dataDir string) (Store, func(), error) {
	switch {
	case databaseURL != "":
		pool, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		pg, err := NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil
	case sqlitePath != "":
		db, err := NewSQLite(sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		fs, err := NewFile(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}
