package domain

import (
	"errors"
	"testing"
)

func TestExtractDistanceRounding(t *testing.T) {
	// Half-kilometer values round to the nearest even kilometer.
	cases := []struct {
		meters int
		wantKm int
	}{
		{12345, 12},
		{500, 0},
		{1500, 2},
		{2500, 2},
		{3500, 4},
		{999, 1},
		{0, 0},
		{289123, 289},
	}

	for _, tc := range cases {
		el := ResponseElement{
			Status:   StatusOK,
			Distance: &ElementValue{Value: tc.meters},
			Duration: &ElementValue{Value: 60},
		}

		got, err := el.Extract(AttrDistance)
		if err != nil {
			t.Fatalf("meters=%d: unexpected error: %v", tc.meters, err)
		}
		if !got.Valid {
			t.Fatalf("meters=%d: metric should be valid", tc.meters)
		}
		if got.Value != tc.wantKm {
			t.Errorf("meters=%d: km = %d, want %d", tc.meters, got.Value, tc.wantKm)
		}
	}
}

func TestExtractDurationPassthrough(t *testing.T) {
	el := ResponseElement{
		Status:   StatusOK,
		Distance: &ElementValue{Value: 1000},
		Duration: &ElementValue{Value: 11160},
	}

	got, err := el.Extract(AttrDuration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid || got.Value != 11160 {
		t.Errorf("duration = %+v, want 11160 seconds", got)
	}
}

func TestExtractNonOKStatuses(t *testing.T) {
	// Every non-OK status maps to the same missing marker, never an error.
	for _, status := range []string{StatusZeroResults, StatusNotFound, "MAX_ROUTE_LENGTH_EXCEEDED"} {
		el := ResponseElement{Status: status}

		for _, attr := range []Attribute{AttrDistance, AttrDuration} {
			got, err := el.Extract(attr)
			if err != nil {
				t.Fatalf("status=%s attr=%s: unexpected error: %v", status, attr, err)
			}
			if got.Valid {
				t.Errorf("status=%s attr=%s: metric should be invalid", status, attr)
			}
		}
	}
}

func TestExtractUnsupportedAttribute(t *testing.T) {
	el := ResponseElement{
		Status:   StatusOK,
		Distance: &ElementValue{Value: 1000},
	}

	_, err := el.Extract("fare")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrUnsupportedAttribute) {
		t.Errorf("error should wrap ErrUnsupportedAttribute, got %v", err)
	}
}

func TestExtractMissingBlock(t *testing.T) {
	el := ResponseElement{Status: StatusOK}

	_, err := el.Extract(AttrDistance)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error should wrap ErrMalformedResponse, got %v", err)
	}
}
