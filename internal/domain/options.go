package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Mode is the transportation mode for a matrix request.
type Mode string

const (
	ModeDriving   Mode = "driving"
	ModeWalking   Mode = "walking"
	ModeBicycling Mode = "bicycling"
	ModeTransit   Mode = "transit"
)

func (m Mode) IsValid() bool {
	switch m {
	case "", ModeDriving, ModeWalking, ModeBicycling, ModeTransit:
		return true
	}
	return false
}

// Avoid names a route feature the matrix service should route around.
type Avoid string

const (
	AvoidTolls    Avoid = "tolls"
	AvoidHighways Avoid = "highways"
	AvoidFerries  Avoid = "ferries"
)

func (a Avoid) IsValid() bool {
	switch a {
	case "", AvoidTolls, AvoidHighways, AvoidFerries:
		return true
	}
	return false
}

// Units selects the unit system of the textual distance fields. The numeric
// meter values are unaffected.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

func (u Units) IsValid() bool {
	switch u {
	case "", UnitsMetric, UnitsImperial:
		return true
	}
	return false
}

// TransitMode narrows transit routing to specific vehicle types.
type TransitMode string

const (
	TransitModeBus    TransitMode = "bus"
	TransitModeSubway TransitMode = "subway"
	TransitModeTrain  TransitMode = "train"
	TransitModeTram   TransitMode = "tram"
	TransitModeRail   TransitMode = "rail"
)

func (t TransitMode) IsValid() bool {
	switch t {
	case "", TransitModeBus, TransitModeSubway, TransitModeTrain, TransitModeTram, TransitModeRail:
		return true
	}
	return false
}

// TransitRoutingPreference biases transit routing.
type TransitRoutingPreference string

const (
	PreferLessWalking    TransitRoutingPreference = "less_walking"
	PreferFewerTransfers TransitRoutingPreference = "fewer_transfers"
)

func (p TransitRoutingPreference) IsValid() bool {
	switch p {
	case "", PreferLessWalking, PreferFewerTransfers:
		return true
	}
	return false
}

// TrafficModel selects the duration-in-traffic estimate.
type TrafficModel string

const (
	TrafficBestGuess   TrafficModel = "best_guess"
	TrafficOptimistic  TrafficModel = "optimistic"
	TrafficPessimistic TrafficModel = "pessimistic"
)

func (t TrafficModel) IsValid() bool {
	switch t {
	case "", TrafficBestGuess, TrafficOptimistic, TrafficPessimistic:
		return true
	}
	return false
}

// travelTimePast is the tolerance for concrete instants that lie in the past.
// It absorbs the gap between building a payload and validating it.
const travelTimePast = 4 * time.Minute

// TravelTime is a departure or arrival instant: either the service keyword
// "now" or a concrete point in time. The zero value is invalid; use
// TravelNow or TravelAt.
type TravelTime struct {
	now bool
	at  time.Time
}

// TravelNow returns the "now" keyword instant.
func TravelNow() *TravelTime { return &TravelTime{now: true} }

// TravelAt returns a concrete instant.
func TravelAt(t time.Time) *TravelTime { return &TravelTime{at: t} }

// IsNow reports whether the instant is the "now" keyword.
func (t *TravelTime) IsNow() bool { return t.now }

// Time returns the concrete instant; zero when IsNow.
func (t *TravelTime) Time() time.Time { return t.at }

// UnmarshalJSON accepts the string "now" or epoch seconds. Every other
// string is rejected here rather than forwarded to the service.
func (t *TravelTime) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch n := v.(type) {
	case string:
		if n != "now" {
			return &InvalidQueryError{Field: "travel time", Value: n, Reason: `string travel times must be "now"`}
		}
		*t = TravelTime{now: true}
		return nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return &InvalidQueryError{Field: "travel time", Value: n, Reason: "epoch seconds out of range"}
		}
		sec, frac := math.Modf(f)
		*t = TravelTime{at: time.Unix(int64(sec), int64(frac*1e9))}
		return nil
	default:
		return &InvalidQueryError{Field: "travel time", Value: v, Reason: `must be "now" or epoch seconds`}
	}
}

func (t TravelTime) MarshalJSON() ([]byte, error) {
	if t.now {
		return json.Marshal("now")
	}
	return []byte(strconv.FormatInt(t.at.Unix(), 10)), nil
}

func (t *TravelTime) validate(field string, now time.Time) error {
	if t.now {
		return nil
	}
	if t.at.Before(now.Add(-travelTimePast)) {
		return &InvalidQueryError{Field: field, Value: t.at, Reason: "must not lie in the past"}
	}
	return nil
}

// Options carries the optional tuning parameters of a matrix request. Zero
// values mean "not set" and stay off the wire.
type Options struct {
	Mode                     Mode                     `json:"mode,omitempty"`
	Language                 string                   `json:"language,omitempty"`
	Avoid                    Avoid                    `json:"avoid,omitempty"`
	Units                    Units                    `json:"units,omitempty"`
	DepartureTime            *TravelTime              `json:"departure_time,omitempty"`
	ArrivalTime              *TravelTime              `json:"arrival_time,omitempty"`
	TransitMode              TransitMode              `json:"transit_mode,omitempty"`
	TransitRoutingPreference TransitRoutingPreference `json:"transit_routing_preference,omitempty"`
	TrafficModel             TrafficModel             `json:"traffic_model,omitempty"`
	Region                   string                   `json:"region,omitempty"`
}

// Validate checks every set option against its accepted values. now is the
// evaluation instant for the departure and arrival window rule. Setting both
// departure_time and arrival_time is invalid regardless of their values.
func (o Options) Validate(now time.Time) error {
	if !o.Mode.IsValid() {
		return &InvalidQueryError{Field: "mode", Value: o.Mode, Reason: "unknown travel mode"}
	}
	if !o.Avoid.IsValid() {
		return &InvalidQueryError{Field: "avoid", Value: o.Avoid, Reason: "unknown avoid value"}
	}
	if !o.Units.IsValid() {
		return &InvalidQueryError{Field: "units", Value: o.Units, Reason: "unknown units value"}
	}
	if !o.TransitMode.IsValid() {
		return &InvalidQueryError{Field: "transit_mode", Value: o.TransitMode, Reason: "unknown transit mode"}
	}
	if !o.TransitRoutingPreference.IsValid() {
		return &InvalidQueryError{Field: "transit_routing_preference", Value: o.TransitRoutingPreference, Reason: "unknown transit routing preference"}
	}
	if !o.TrafficModel.IsValid() {
		return &InvalidQueryError{Field: "traffic_model", Value: o.TrafficModel, Reason: "unknown traffic model"}
	}

	if o.DepartureTime != nil && o.ArrivalTime != nil {
		return &InvalidQueryError{Field: "departure_time", Reason: "departure_time and arrival_time are mutually exclusive"}
	}
	if o.DepartureTime != nil {
		if err := o.DepartureTime.validate("departure_time", now); err != nil {
			return err
		}
	}
	if o.ArrivalTime != nil {
		if err := o.ArrivalTime.validate("arrival_time", now); err != nil {
			return err
		}
	}

	return nil
}
