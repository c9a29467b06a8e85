package googlemaps

import (
	"context"
	"distance-matrix-service/internal/domain"
	"distance-matrix-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// Client calls the Google Maps Distance Matrix endpoint. One attempt per
// call; failed requests are not retried.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	logger  *zap.Logger
}

// NewClient builds a matrix client. baseURL may be empty to use the public
// endpoint; logger may be nil.
func NewClient(apiKey, baseURL string, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// FetchMatrix issues one distance matrix call for a validated request and
// returns the decoded body. The top-level service status is returned as
// data; the caller owns that check.
func (c *Client) FetchMatrix(ctx context.Context, req *domain.Request) (_ *domain.RawResponse, err error) {
	defer obs.Time(ctx, c.logger, "googlemaps.FetchMatrix")(&err)

	endpoint := c.baseURL + "/distancematrix/json"

	httpReq, err := c.newRequest(ctx, endpoint, c.params(req))
	if err != nil {
		return nil, err
	}

	resp, err := c.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var out domain.RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	return &out, nil
}

// params maps the canonical request onto the service's query parameters.
// Query terms are joined with the pipe separator the service expects.
func (c *Client) params(req *domain.Request) url.Values {
	v := url.Values{}
	v.Set("key", c.apiKey)
	v.Set("origins", strings.Join(req.Origins().Terms(), "|"))
	v.Set("destinations", strings.Join(req.Destinations().Terms(), "|"))

	opts := req.Options()
	if opts.Mode != "" {
		v.Set("mode", string(opts.Mode))
	}
	if opts.Language != "" {
		v.Set("language", opts.Language)
	}
	if opts.Avoid != "" {
		v.Set("avoid", string(opts.Avoid))
	}
	if opts.Units != "" {
		v.Set("units", string(opts.Units))
	}
	if opts.DepartureTime != nil {
		v.Set("departure_time", travelTimeParam(opts.DepartureTime))
	}
	if opts.ArrivalTime != nil {
		v.Set("arrival_time", travelTimeParam(opts.ArrivalTime))
	}
	if opts.TransitMode != "" {
		v.Set("transit_mode", string(opts.TransitMode))
	}
	if opts.TransitRoutingPreference != "" {
		v.Set("transit_routing_preference", string(opts.TransitRoutingPreference))
	}
	if opts.TrafficModel != "" {
		v.Set("traffic_model", string(opts.TrafficModel))
	}
	if opts.Region != "" {
		v.Set("region", opts.Region)
	}

	return v
}

func travelTimeParam(t *domain.TravelTime) string {
	if t.IsNow() {
		return "now"
	}
	return strconv.FormatInt(t.Time().Unix(), 10)
}

func (c *Client) newRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (e *httpStatusError) Unwrap() error { return domain.ErrUpstream }
