package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewRequest(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	origins, err := ParseQuery("origins", []any{"Berlin Hbf", "Hamburg Hbf"})
	if err != nil {
		t.Fatalf("parse origins: %v", err)
	}
	destinations, err := ParseQuery("destinations", "place_id:ChIJAVkDPzdOqEcRcDteW0YgIQQ")
	if err != nil {
		t.Fatalf("parse destinations: %v", err)
	}

	req, err := NewRequest(origins, destinations, Options{Mode: ModeTransit}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(req.Origins()); got != 2 {
		t.Errorf("origins = %d, want 2", got)
	}
	if got := req.Options().Mode; got != ModeTransit {
		t.Errorf("mode = %q, want transit", got)
	}

	terms := req.Terms()
	want := []string{"Berlin Hbf", "Hamburg Hbf", "place_id:ChIJAVkDPzdOqEcRcDteW0YgIQQ"}
	if len(terms) != len(want) {
		t.Fatalf("terms = %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("term %d = %q, want %q", i, terms[i], want[i])
		}
	}
}

func TestNewRequestEmptySides(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := Query{{Kind: KindAddress, Address: "Berlin"}}

	_, err := NewRequest(nil, q, Options{}, now)
	if err == nil {
		t.Fatal("empty origins should be rejected")
	}
	var iqe *InvalidQueryError
	if !errors.As(err, &iqe) || iqe.Field != "origins" {
		t.Errorf("error = %v, want invalid origins", err)
	}

	_, err = NewRequest(q, nil, Options{}, now)
	if err == nil {
		t.Fatal("empty destinations should be rejected")
	}
	if !errors.As(err, &iqe) || iqe.Field != "destinations" {
		t.Errorf("error = %v, want invalid destinations", err)
	}
}

func TestNewRequestRevalidatesEntries(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	good := Query{{Kind: KindAddress, Address: "Berlin"}}
	bad := Query{{}}

	if _, err := NewRequest(good, bad, Options{}, now); err == nil {
		t.Fatal("zero-value location should be rejected")
	}
}

func TestNewRequestInvalidOptions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := Query{{Kind: KindAddress, Address: "Berlin"}}

	_, err := NewRequest(q, q, Options{Mode: "flying"}, now)
	if err == nil {
		t.Fatal("invalid mode should be rejected")
	}
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("error should wrap ErrInvalidQuery, got %v", err)
	}
}
