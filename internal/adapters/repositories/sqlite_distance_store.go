package repositories

import (
	"context"
	"database/sql"
	"distance-matrix-service/internal/domain"
	"errors"
	"fmt"
	"time"
)

// SQLite-backed implementation of the DistanceStore port.
type SqliteDistanceStore struct{ DB *sql.DB }

func NewSqliteDistanceStore(db *sql.DB) *SqliteDistanceStore {
	return &SqliteDistanceStore{DB: db}
}

// Store a named location. A second insert under the same name
// violates the unique constraint and surfaces as an error.
func (s *SqliteDistanceStore) InsertLocation(ctx context.Context, name, address string) error {
	if s.DB == nil {
		return errors.New("sqlite distance store: DB is nil")
	}

	query := `
	INSERT INTO locations (
		location_name,
		location_address
	)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, name, address); err != nil {
		return fmt.Errorf("insert location %q: %w", name, err)
	}

	return nil
}

// Record a measurement between two previously stored locations.
func (s *SqliteDistanceStore) InsertDistance(ctx context.Context, origin, destination string, distanceKm, durationSec domain.Metric, measuredAt time.Time) error {
	if s.DB == nil {
		return errors.New("sqlite distance store: DB is nil")
	}

	originID, err := s.locationID(ctx, origin)
	if err != nil {
		return fmt.Errorf("insert distance: %w", err)
	}
	destinationID, err := s.locationID(ctx, destination)
	if err != nil {
		return fmt.Errorf("insert distance: %w", err)
	}

	query := `
	INSERT INTO distances (
		origin_id,
		destination_id,
		distance_km,
		duration_sec,
		timestamp_utc
	)
	VALUES (?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		originID,
		destinationID,
		nullMetric(distanceKm),
		nullMetric(durationSec),
		measuredAt,
	)
	if err != nil {
		return fmt.Errorf("insert distance %q -> %q: %w", origin, destination, err)
	}

	return nil
}

func (s *SqliteDistanceStore) locationID(ctx context.Context, name string) (int64, error) {
	query := `
	SELECT id FROM locations WHERE location_name = ?;
	`
	var id int64
	err := s.DB.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("unknown location %q", name)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve location %q: %w", name, err)
	}
	return id, nil
}
