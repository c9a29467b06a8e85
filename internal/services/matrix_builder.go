package services

import (
	"context"
	"distance-matrix-service/internal/domain"
	"distance-matrix-service/internal/ports"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// MatrixBuilder turns a raw matrix reply into a label-addressed distance
// matrix. With a Store configured it also records every location and every
// measured cell; durations are persisted but never enter the matrix itself.
type MatrixBuilder struct {
	Store  ports.DistanceStore
	Logger *zap.Logger
}

// Build validates the reply structure against the caller-supplied aliases and
// assembles the matrix row by row, origins outermost. Aliases are sanitized
// first; duplicate sanitized aliases collide last-write-wins.
func (b *MatrixBuilder) Build(
	ctx context.Context,
	resp *domain.RawResponse,
	originNames []string,
	destinationNames []string,
) (*domain.Matrix, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	origins := domain.SanitizeLabels(originNames)
	destinations := domain.SanitizeLabels(destinationNames)

	if len(origins) != len(resp.OriginAddresses) {
		return nil, &domain.InvalidQueryError{
			Field:  "origin_names",
			Value:  len(origins),
			Reason: fmt.Sprintf("alias count must match %d origin addresses", len(resp.OriginAddresses)),
		}
	}
	if len(destinations) != len(resp.DestinationAddresses) {
		return nil, &domain.InvalidQueryError{
			Field:  "destination_names",
			Value:  len(destinations),
			Reason: fmt.Sprintf("alias count must match %d destination addresses", len(resp.DestinationAddresses)),
		}
	}

	if len(resp.Rows) != len(resp.OriginAddresses) {
		return nil, &domain.MalformedResponseError{
			Row:    -1,
			Reason: fmt.Sprintf("%d rows for %d origin addresses", len(resp.Rows), len(resp.OriginAddresses)),
		}
	}
	for i, row := range resp.Rows {
		if len(row.Elements) != len(resp.DestinationAddresses) {
			return nil, &domain.MalformedResponseError{
				Row:    i,
				Reason: fmt.Sprintf("%d elements for %d destination addresses", len(row.Elements), len(resp.DestinationAddresses)),
			}
		}
	}

	var measuredAt time.Time
	if b.Store != nil {
		var err error
		measuredAt, err = time.Parse(time.RFC3339, resp.RequestTime)
		if err != nil {
			return nil, fmt.Errorf("build matrix: parse request time %q: %w", resp.RequestTime, err)
		}

		b.insertLocations(ctx, logger, origins, resp.OriginAddresses)
		b.insertLocations(ctx, logger, destinations, resp.DestinationAddresses)
	}

	matrix := domain.NewMatrix(origins, destinations)

	for i, row := range resp.Rows {
		origin := origins[i]
		for j, el := range row.Elements {
			destination := destinations[j]

			km, err := el.Extract(domain.AttrDistance)
			if err != nil {
				return nil, fmt.Errorf("build matrix: row %d element %d: %w", i, j, err)
			}
			seconds, err := el.Extract(domain.AttrDuration)
			if err != nil {
				return nil, fmt.Errorf("build matrix: row %d element %d: %w", i, j, err)
			}

			matrix.Set(origin, destination, km)

			if b.Store == nil {
				continue
			}
			if err := b.Store.InsertDistance(ctx, origin, destination, km, seconds, measuredAt); err != nil {
				return nil, fmt.Errorf("build matrix: insert distance %q -> %q: %w", origin, destination, err)
			}
		}
	}

	return matrix, nil
}

// Location inserts are tolerant: a failed insert is taken as "already
// present", logged and skipped.
func (b *MatrixBuilder) insertLocations(ctx context.Context, logger *zap.Logger, names, addresses []string) {
	for i, name := range names {
		if err := b.Store.InsertLocation(ctx, name, addresses[i]); err != nil {
			logger.Warn("location insert skipped",
				zap.String("name", name),
				zap.Error(err),
			)
		}
	}
}
