package ports

import (
	"context"
	"distance-matrix-service/internal/domain"
)

// ResponseArchiver stores raw matrix replies for audit and replay.
type ResponseArchiver interface {
	// Persist the reply under a name derived from label and the query
	// terms; returns that artifact base name.
	Archive(ctx context.Context, resp *domain.RawResponse, label string, terms []string) (string, error)
}
