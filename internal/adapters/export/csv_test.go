package export

import (
	"context"
	"distance-matrix-service/internal/domain"
	"os"
	"path/filepath"
	"testing"
)

func TestExportWritesTable(t *testing.T) {
	m := domain.NewMatrix([]string{"Berlin", "Hamburg"}, []string{"München", "Köln"})
	m.Set("Berlin", "München", domain.Metric{Value: 584, Valid: true})
	m.Set("Berlin", "Köln", domain.Metric{Value: 575, Valid: true})
	m.Set("Hamburg", "München", domain.Metric{Value: 776, Valid: true})
	m.Set("Hamburg", "Köln", domain.Metric{})

	dir := t.TempDir()
	exporter := NewCSVExporter(dir, nil)

	path, err := exporter.Export(context.Background(), m, "gmaps_dist_matrix_data_berlin_hambur_a1b2c3d.json")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if got, want := filepath.Base(path), "gmaps_dist_matrix_data_berlin_hambur_a1b2c3d.csv"; got != want {
		t.Errorf("file name = %q, want %q", got, want)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	want := "Matrix,München,Köln\n" +
		"Berlin,584,575\n" +
		"Hamburg,776,NaN\n"
	if string(body) != want {
		t.Errorf("csv = %q, want %q", body, want)
	}
}

func TestExportUnsetCellIsMissing(t *testing.T) {
	m := domain.NewMatrix([]string{"A"}, []string{"B"})

	dir := t.TempDir()
	exporter := NewCSVExporter(dir, nil)

	path, err := exporter.Export(context.Background(), m, "sparse")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got, want := string(body), "Matrix,B\nA,NaN\n"; got != want {
		t.Errorf("csv = %q, want %q", got, want)
	}
}

func TestExportRequiresDir(t *testing.T) {
	exporter := NewCSVExporter("", nil)
	if _, err := exporter.Export(context.Background(), domain.NewMatrix(nil, nil), "x"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
