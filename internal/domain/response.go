package domain

import (
	"fmt"
	"math"
)

// Status values reported by the matrix service. Element statuses other than
// OK (ZERO_RESULTS, NOT_FOUND, ...) all mean the same thing to the matrix:
// the cell has no measurement.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
	StatusNotFound    = "NOT_FOUND"
)

// RawResponse is the matrix service reply, decoded as received. RequestTime
// is the UTC request instant, appended before archival.
type RawResponse struct {
	Status               string        `json:"status"`
	ErrorMessage         string        `json:"error_message,omitempty"`
	OriginAddresses      []string      `json:"origin_addresses"`
	DestinationAddresses []string      `json:"destination_addresses"`
	Rows                 []ResponseRow `json:"rows"`
	RequestTime          string        `json:"request_time_iso,omitempty"`
}

// ResponseRow holds the elements for one origin, ordered by destination.
type ResponseRow struct {
	Elements []ResponseElement `json:"elements"`
}

// ResponseElement is one origin-destination cell of the raw matrix.
type ResponseElement struct {
	Status   string        `json:"status"`
	Distance *ElementValue `json:"distance,omitempty"`
	Duration *ElementValue `json:"duration,omitempty"`
}

// ElementValue is a raw metric: meters for distances, seconds for durations.
type ElementValue struct {
	Value int    `json:"value"`
	Text  string `json:"text,omitempty"`
}

// Attribute selects which element metric to extract.
type Attribute string

const (
	AttrDistance Attribute = "distance"
	AttrDuration Attribute = "duration"
)

// Extract returns the element metric for attr. Distances are converted from
// meters to whole kilometers with half-to-even rounding; durations stay in
// seconds. Any element status other than OK yields the invalid Metric and no
// error.
func (e ResponseElement) Extract(attr Attribute) (Metric, error) {
	if e.Status != StatusOK {
		return Metric{}, nil
	}

	switch attr {
	case AttrDistance:
		if e.Distance == nil {
			return Metric{}, &MalformedResponseError{Row: -1, Reason: "element status OK without a distance"}
		}
		km := int(math.RoundToEven(float64(e.Distance.Value) / 1000))
		return Metric{Value: km, Valid: true}, nil
	case AttrDuration:
		if e.Duration == nil {
			return Metric{}, &MalformedResponseError{Row: -1, Reason: "element status OK without a duration"}
		}
		return Metric{Value: e.Duration.Value, Valid: true}, nil
	default:
		return Metric{}, fmt.Errorf("%w: %q", ErrUnsupportedAttribute, attr)
	}
}
