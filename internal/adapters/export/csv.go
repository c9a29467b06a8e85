// Package export renders assembled matrices to files for offline use.
package export

import (
	"bytes"
	"context"
	"distance-matrix-service/internal/domain"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Cells with no usable measurement are exported as this literal.
const missingCell = "NaN"

// Writes each matrix as a CSV table under Dir.
type CSVExporter struct {
	Dir    string
	Logger *zap.Logger
}

func NewCSVExporter(dir string, logger *zap.Logger) *CSVExporter {
	return &CSVExporter{Dir: dir, Logger: logger}
}

// Export writes the matrix as CSV next to its archived response, reusing
// the artifact name with a .csv extension, and returns the file path.
func (e *CSVExporter) Export(ctx context.Context, m *domain.Matrix, name string) (string, error) {
	if e.Dir == "" {
		return "", errors.New("export matrix: no directory configured")
	}
	if m == nil {
		return "", errors.New("export matrix: matrix is nil")
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("export matrix: create %q: %w", e.Dir, err)
	}

	cols := m.ColumnLabels()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(append([]string{"Matrix"}, cols...)); err != nil {
		return "", fmt.Errorf("export matrix: write header: %w", err)
	}
	for _, row := range m.RowLabels() {
		record := make([]string, 0, len(cols)+1)
		record = append(record, row)
		for _, col := range cols {
			record = append(record, cell(m, row, col))
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("export matrix: write row %q: %w", row, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export matrix: flush: %w", err)
	}

	path := filepath.Join(e.Dir, strings.TrimSuffix(name, ".json")+".csv")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("export matrix: write %q: %w", path, err)
	}

	if e.Logger != nil {
		e.Logger.Debug("matrix exported", zap.String("file", filepath.Base(path)))
	}
	return path, nil
}

func cell(m *domain.Matrix, row, col string) string {
	metric, ok := m.Value(row, col)
	if !ok || !metric.Valid {
		return missingCell
	}
	return strconv.Itoa(metric.Value)
}
