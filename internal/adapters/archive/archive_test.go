package archive

import (
	"context"
	"distance-matrix-service/internal/domain"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestBuildName(t *testing.T) {
	terms := []string{"Berlin Hauptbahnhof", "München Ost", "52.52,13.405", "Hamburg"}

	name := BuildName("dist_matrix_data", terms)

	pattern := regexp.MustCompile(`^gmaps_dist_matrix_data_berlin_munche_525213_[0-9a-f]{7}\.json$`)
	if !pattern.MatchString(name) {
		t.Errorf("name = %q, want match for %s", name, pattern)
	}

	if again := BuildName("dist_matrix_data", terms); again != name {
		t.Errorf("name not deterministic: %q vs %q", name, again)
	}

	other := BuildName("dist_matrix_data", []string{"Berlin Hauptbahnhof", "München Ost"})
	if other == name {
		t.Error("different queries should hash to different names")
	}
}

func TestBuildNameDegenerateTerms(t *testing.T) {
	name := BuildName("", []string{"???", "!!!"})

	pattern := regexp.MustCompile(`^gmaps_matrix_query_[0-9a-f]{7}\.json$`)
	if !pattern.MatchString(name) {
		t.Errorf("name = %q, want match for %s", name, pattern)
	}
}

func TestArchiveWritesResponse(t *testing.T) {
	dir := t.TempDir()
	archiver := NewFileArchiver(dir, nil)

	resp := &domain.RawResponse{
		Status:               domain.StatusOK,
		OriginAddresses:      []string{"Berlin, Germany"},
		DestinationAddresses: []string{"Hamburg, Germany"},
		Rows: []domain.ResponseRow{
			{Elements: []domain.ResponseElement{{
				Status:   domain.StatusOK,
				Distance: &domain.ElementValue{Value: 289123, Text: "289 km"},
				Duration: &domain.ElementValue{Value: 11160, Text: "3 hours 6 mins"},
			}}},
		},
		RequestTime: "2026-03-01T12:00:00Z",
	}

	name, err := archiver.Archive(context.Background(), resp, "dist_matrix_data", []string{"Berlin", "Hamburg"})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}

	body, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}

	var got domain.RawResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("artifact is not valid json: %v", err)
	}
	if got.RequestTime != "2026-03-01T12:00:00Z" {
		t.Errorf("request_time_iso = %q, want the stamped time", got.RequestTime)
	}
	if got.Rows[0].Elements[0].Distance.Value != 289123 {
		t.Errorf("archived meters = %d, want 289123", got.Rows[0].Elements[0].Distance.Value)
	}
}

func TestArchiveRequiresDir(t *testing.T) {
	archiver := NewFileArchiver("", nil)
	if _, err := archiver.Archive(context.Background(), &domain.RawResponse{}, "x", nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
