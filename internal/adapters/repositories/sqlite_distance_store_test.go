package repositories

import (
	"context"
	"database/sql"
	"distance-matrix-service/internal/domain"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// Each pooled connection gets its own private in-memory database,
// so the pool must be pinned to a single connection.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSqliteSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteDistanceStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)
	store := NewSqliteDistanceStore(db)
	ctx := context.Background()

	if err := store.InsertLocation(ctx, "Berlin Hbf", "Berlin Hbf, Berlin, Germany"); err != nil {
		t.Fatalf("insert origin: %v", err)
	}
	if err := store.InsertLocation(ctx, "Hamburg Hbf", "Hamburg Hbf, Hamburg, Germany"); err != nil {
		t.Fatalf("insert destination: %v", err)
	}

	measuredAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := store.InsertDistance(ctx, "Berlin Hbf", "Hamburg Hbf",
		domain.Metric{Value: 289, Valid: true},
		domain.Metric{Value: 11160, Valid: true},
		measuredAt,
	)
	if err != nil {
		t.Fatalf("insert distance: %v", err)
	}

	var distanceKm, durationSec sql.NullInt64
	row := db.QueryRow(`
	SELECT d.distance_km, d.duration_sec
	FROM distances d
	JOIN locations o ON o.id = d.origin_id
	JOIN locations t ON t.id = d.destination_id
	WHERE o.location_name = ? AND t.location_name = ?;
	`, "Berlin Hbf", "Hamburg Hbf")
	if err := row.Scan(&distanceKm, &durationSec); err != nil {
		t.Fatalf("scan distance row: %v", err)
	}

	if !distanceKm.Valid || distanceKm.Int64 != 289 {
		t.Errorf("distance_km = %+v, want 289", distanceKm)
	}
	if !durationSec.Valid || durationSec.Int64 != 11160 {
		t.Errorf("duration_sec = %+v, want 11160", durationSec)
	}
}

func TestSqliteDistanceStoreNullMetrics(t *testing.T) {
	db := openTestDB(t)
	store := NewSqliteDistanceStore(db)
	ctx := context.Background()

	if err := store.InsertLocation(ctx, "Berlin Hbf", "Berlin"); err != nil {
		t.Fatalf("insert origin: %v", err)
	}
	if err := store.InsertLocation(ctx, "Atlantis", "Atlantis"); err != nil {
		t.Fatalf("insert destination: %v", err)
	}

	err := store.InsertDistance(ctx, "Berlin Hbf", "Atlantis",
		domain.Metric{}, domain.Metric{}, time.Now().UTC())
	if err != nil {
		t.Fatalf("insert distance: %v", err)
	}

	var distanceKm, durationSec sql.NullInt64
	row := db.QueryRow(`SELECT distance_km, duration_sec FROM distances;`)
	if err := row.Scan(&distanceKm, &durationSec); err != nil {
		t.Fatalf("scan distance row: %v", err)
	}

	if distanceKm.Valid {
		t.Errorf("distance_km = %+v, want NULL", distanceKm)
	}
	if durationSec.Valid {
		t.Errorf("duration_sec = %+v, want NULL", durationSec)
	}
}

func TestSqliteDistanceStoreDuplicateLocation(t *testing.T) {
	db := openTestDB(t)
	store := NewSqliteDistanceStore(db)
	ctx := context.Background()

	if err := store.InsertLocation(ctx, "Berlin Hbf", "Berlin"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := store.InsertLocation(ctx, "Berlin Hbf", "Berlin again"); err == nil {
		t.Fatal("duplicate location name should be rejected")
	}
}

func TestSqliteDistanceStoreUnknownLocation(t *testing.T) {
	db := openTestDB(t)
	store := NewSqliteDistanceStore(db)
	ctx := context.Background()

	if err := store.InsertLocation(ctx, "Berlin Hbf", "Berlin"); err != nil {
		t.Fatalf("insert origin: %v", err)
	}

	err := store.InsertDistance(ctx, "Berlin Hbf", "Nowhere",
		domain.Metric{Value: 1, Valid: true},
		domain.Metric{Value: 1, Valid: true},
		time.Now().UTC())
	if err == nil {
		t.Fatal("expected error for unresolved destination")
	}
	if !strings.Contains(err.Error(), `unknown location "Nowhere"`) {
		t.Errorf("error = %q, want it to name the missing location", err)
	}
}
