package ports

import (
	"context"
	"distance-matrix-service/internal/domain"
)

// MatrixExporter writes an assembled matrix to an external representation.
type MatrixExporter interface {
	// Write the matrix under the given artifact base name; returns the
	// destination path.
	Export(ctx context.Context, m *domain.Matrix, name string) (string, error)
}
