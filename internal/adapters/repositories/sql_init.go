package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the PostgreSQL database schema.
func InitSQLSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		location_name TEXT NOT NULL UNIQUE,
		location_address TEXT NOT NULL
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
		id BIGSERIAL PRIMARY KEY,
		origin_id BIGINT NOT NULL REFERENCES locations(id),
		destination_id BIGINT NOT NULL REFERENCES locations(id),
		distance_km BIGINT,
		duration_sec BIGINT,
		timestamp_utc TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distances_origin_destination
	ON distances(origin_id, destination_id);
	`

	statements := []string{
		createLocationsQuery,
		createDistancesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
