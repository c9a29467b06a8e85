package domain

// Metric is an extracted cell value. Valid is false for cells the service
// could not route; that is the single missing marker for every non-OK
// element status.
type Metric struct {
	Value int
	Valid bool
}

// Matrix is a label-addressed distance matrix. It has a single writer during
// assembly and is read-only afterwards; it is not safe for concurrent
// construction.
type Matrix struct {
	rowLabels []string
	colLabels []string
	cells     map[string]map[string]Metric
}

// NewMatrix allocates a matrix for the given sanitized labels. The label
// slices keep their positional order, duplicates included.
func NewMatrix(rowLabels, colLabels []string) *Matrix {
	return &Matrix{
		rowLabels: append([]string(nil), rowLabels...),
		colLabels: append([]string(nil), colLabels...),
		cells:     make(map[string]map[string]Metric, len(rowLabels)),
	}
}

// Set records one cell. Duplicate labels collide last-write-wins.
func (m *Matrix) Set(origin, destination string, v Metric) {
	row, ok := m.cells[origin]
	if !ok {
		row = make(map[string]Metric, len(m.colLabels))
		m.cells[origin] = row
	}
	row[destination] = v
}

// Value returns the cell for the given labels and whether it was ever set.
func (m *Matrix) Value(origin, destination string) (Metric, bool) {
	row, ok := m.cells[origin]
	if !ok {
		return Metric{}, false
	}
	v, ok := row[destination]
	return v, ok
}

// RowLabels returns the origin labels in request order.
func (m *Matrix) RowLabels() []string { return append([]string(nil), m.rowLabels...) }

// ColumnLabels returns the destination labels in request order.
func (m *Matrix) ColumnLabels() []string { return append([]string(nil), m.colLabels...) }
