package repositories

import (
	"context"
	"database/sql"
	"distance-matrix-service/internal/domain"
	"errors"
	"fmt"
	"time"
)

// PostgreSQL-backed implementation of the DistanceStore port.
type SQLDistanceStore struct{ DB *sql.DB }

func NewSQLDistanceStore(db *sql.DB) *SQLDistanceStore {
	return &SQLDistanceStore{DB: db}
}

// Store a named location. A second insert under the same name
// violates the unique constraint and surfaces as an error.
func (s *SQLDistanceStore) InsertLocation(ctx context.Context, name, address string) error {
	if s.DB == nil {
		return errors.New("sql distance store: DB is nil")
	}

	query := `
	INSERT INTO locations (
		location_name,
		location_address
	)
	VALUES ($1, $2);
	`
	if _, err := s.DB.ExecContext(ctx, query, name, address); err != nil {
		return fmt.Errorf("insert location %q: %w", name, err)
	}

	return nil
}

// Record a measurement between two previously stored locations.
func (s *SQLDistanceStore) InsertDistance(ctx context.Context, origin, destination string, distanceKm, durationSec domain.Metric, measuredAt time.Time) error {
	if s.DB == nil {
		return errors.New("sql distance store: DB is nil")
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
	VALUES ($1, $2, $3, $4, $5);
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

func (s *SQLDistanceStore) locationID(ctx context.Context, name string) (int64, error) {
	query := `
	SELECT id FROM locations WHERE location_name = $1;
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

// Unroutable pairs are stored as NULL rather than a sentinel value.
func nullMetric(m domain.Metric) sql.NullInt64 {
	if !m.Valid {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(m.Value), Valid: true}
}
