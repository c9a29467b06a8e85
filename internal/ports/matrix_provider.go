package ports

import (
	"context"
	"distance-matrix-service/internal/domain"
)

// Contract for fetching a raw travel matrix from an external service.
type MatrixProvider interface {
	// Return the decoded matrix reply for a validated request. Transport and
	// decode failures are errors; a non-OK service status is data, the
	// caller owns that check.
	FetchMatrix(ctx context.Context, req *domain.Request) (*domain.RawResponse, error)
}
