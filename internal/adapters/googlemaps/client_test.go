package googlemaps

import (
	"context"
	"distance-matrix-service/internal/domain"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"
)

const matrixReply = `{
	"status": "OK",
	"origin_addresses": ["Berlin Hbf, Berlin, Germany", "52.52,13.405"],
	"destination_addresses": ["Hamburg Hbf, Hamburg, Germany"],
	"rows": [
		{"elements": [{"status": "OK", "distance": {"value": 289123, "text": "289 km"}, "duration": {"value": 11160, "text": "3 hours 6 mins"}}]},
		{"elements": [{"status": "OK", "distance": {"value": 288456, "text": "288 km"}, "duration": {"value": 11100, "text": "3 hours 5 mins"}}]}
	]
}`

func testRequest(t *testing.T) *domain.Request {
	t.Helper()

	origins := domain.Query{
		{Kind: domain.KindAddress, Address: "Berlin Hbf"},
		domain.NewCoordinates(52.52, 13.405),
	}
	destinations := domain.Query{
		{Kind: domain.KindPlaceID, PlaceID: "ChIJAVkDPzdOqEcRcDteW0YgIQQ"},
	}
	opts := domain.Options{
		Mode:          domain.ModeTransit,
		Units:         domain.UnitsMetric,
		DepartureTime: domain.TravelNow(),
	}

	req, err := domain.NewRequest(origins, destinations, opts, time.Now())
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

func TestClientFetchMatrix(t *testing.T) {
	var gotPath string
	var gotParams url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotParams = r.URL.Query()
		fmt.Fprint(w, matrixReply)
	}))
	defer srv.Close()

	client, err := NewClient("test-key", srv.URL, zap.NewNop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	resp, err := client.FetchMatrix(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/distancematrix/json" {
		t.Errorf("path = %q, want /distancematrix/json", gotPath)
	}

	wantParams := map[string]string{
		"key":            "test-key",
		"origins":        "Berlin Hbf|52.52,13.405",
		"destinations":   "place_id:ChIJAVkDPzdOqEcRcDteW0YgIQQ",
		"mode":           "transit",
		"units":          "metric",
		"departure_time": "now",
	}
	for k, want := range wantParams {
		if got := gotParams.Get(k); got != want {
			t.Errorf("param %s = %q, want %q", k, got, want)
		}
	}
	if gotParams.Has("arrival_time") {
		t.Error("arrival_time should not be sent when unset")
	}

	if resp.Status != domain.StatusOK {
		t.Errorf("status = %q, want OK", resp.Status)
	}
	if len(resp.Rows) != 2 || len(resp.Rows[0].Elements) != 1 {
		t.Fatalf("rows = %+v, want 2x1", resp.Rows)
	}
	if got := resp.Rows[0].Elements[0].Distance.Value; got != 289123 {
		t.Errorf("meters = %d, want 289123", got)
	}
}

func TestClientReturnsNonOKStatusAsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid."}`)
	}))
	defer srv.Close()

	client, err := NewClient("bad-key", srv.URL, zap.NewNop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	resp, err := client.FetchMatrix(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "REQUEST_DENIED" {
		t.Errorf("status = %q, want REQUEST_DENIED", resp.Status)
	}
}

func TestClientHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient("test-key", srv.URL, zap.NewNop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.FetchMatrix(context.Background(), testRequest(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("error should wrap ErrUpstream, got %v", err)
	}
}

func TestClientDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "OK", "rows": [`)
	}))
	defer srv.Close()

	client, err := NewClient("test-key", srv.URL, zap.NewNop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.FetchMatrix(context.Background(), testRequest(t)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("  ", "", nil); err == nil {
		t.Fatal("empty api key should be rejected")
	}
}

func TestTravelTimeParamEpoch(t *testing.T) {
	at := domain.TravelAt(time.Unix(1767268800, 0))
	if got := travelTimeParam(at); got != "1767268800" {
		t.Errorf("param = %q, want 1767268800", got)
	}
}
