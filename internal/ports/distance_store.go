package ports

import (
	"context"
	"distance-matrix-service/internal/domain"
	"time"
)

// Port: a boundary for persisting resolved locations and measured distances.
type DistanceStore interface {
	// Insert a location under its display name. Names are unique; a
	// duplicate surfaces the driver's uniqueness error and the caller
	// decides whether to tolerate it.
	InsertLocation(ctx context.Context, name, address string) error

	// Insert one measured cell, resolving both locations by display name.
	// Invalid metrics are stored as NULL.
	InsertDistance(ctx context.Context, origin, destination string, distanceKm, durationSec domain.Metric, measuredAt time.Time) error
}
