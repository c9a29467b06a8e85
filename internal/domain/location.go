package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LocationKind discriminates the accepted query entry forms.
type LocationKind uint8

const (
	KindAddress LocationKind = iota + 1
	KindPlaceID
	KindCoordinates
)

const (
	// placeIDPrefix marks an explicit place-identifier entry.
	placeIDPrefix = "place_id:"
	// placeIDMarker is the leading run of bare place identifiers; a string
	// starting with it must carry placeIDPrefix instead.
	placeIDMarker = "ChI"
)

// Location is one validated query entry: a free-text address, a prefixed
// place identifier, or a coordinate pair. Kind selects which fields are set.
type Location struct {
	Kind    LocationKind
	Address string
	PlaceID string
	Lat     float64
	Lng     float64
}

// NewAddress builds a free-text address entry.
func NewAddress(s string) (Location, error) {
	loc := Location{Kind: KindAddress, Address: s}
	if err := loc.validate("location"); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// NewPlaceID builds a place-identifier entry from the bare identifier,
// without the place_id: prefix.
func NewPlaceID(id string) (Location, error) {
	loc := Location{Kind: KindPlaceID, PlaceID: id}
	if err := loc.validate("location"); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// NewCoordinates builds a coordinate entry. Values are taken as-is; the
// matrix service owns range semantics.
func NewCoordinates(lat, lng float64) Location {
	return Location{Kind: KindCoordinates, Lat: lat, Lng: lng}
}

func (l Location) validate(field string) error {
	switch l.Kind {
	case KindAddress:
		if strings.HasPrefix(l.Address, placeIDMarker) {
			return &InvalidQueryError{Field: field, Value: l.Address, Reason: "bare place identifiers must use the place_id: prefix"}
		}
		if strings.TrimSpace(l.Address) == "" {
			return &InvalidQueryError{Field: field, Value: l.Address, Reason: "address must not be blank"}
		}
		return nil
	case KindPlaceID:
		if strings.TrimSpace(l.PlaceID) == "" {
			return &InvalidQueryError{Field: field, Value: l.PlaceID, Reason: "place identifier must not be blank"}
		}
		return nil
	case KindCoordinates:
		return nil
	default:
		return &InvalidQueryError{Field: field, Value: l, Reason: "location kind is not set"}
	}
}

// Term returns the textual form sent to the matrix service: the address
// as-is, the prefixed place identifier, or "lat,lng".
func (l Location) Term() string {
	switch l.Kind {
	case KindPlaceID:
		return placeIDPrefix + l.PlaceID
	case KindCoordinates:
		return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
	default:
		return l.Address
	}
}

// Query is an ordered, validated set of locations for one side of a matrix
// request.
type Query []Location

// Terms returns the wire form of every entry, in order.
func (q Query) Terms() []string {
	out := make([]string, 0, len(q))
	for _, l := range q {
		out = append(out, l.Term())
	}
	return out
}

// ParseQuery validates an untyped origins or destinations payload and
// returns the ordered query set. field names the payload field in error
// reports. Accepted shapes: a single string, a lat/lng object, an array of
// entries, a two-element numeric array taken atomically as one coordinate
// pair, and the typed Go equivalents.
func ParseQuery(field string, v any) (Query, error) {
	switch q := v.(type) {
	case nil:
		return nil, &InvalidQueryError{Field: field, Reason: "value is required"}
	case string:
		loc, err := parseString(field, q)
		if err != nil {
			return nil, err
		}
		return Query{loc}, nil
	case map[string]any:
		loc, err := parseCoordinateObject(field, q)
		if err != nil {
			return nil, err
		}
		return Query{loc}, nil
	case []any:
		return parseEntries(field, q)
	case []string:
		if len(q) == 0 {
			return nil, &InvalidQueryError{Field: field, Value: q, Reason: "query set must not be empty"}
		}
		out := make(Query, 0, len(q))
		for _, s := range q {
			loc, err := parseString(field, s)
			if err != nil {
				return nil, err
			}
			out = append(out, loc)
		}
		return out, nil
	case []float64:
		if len(q) != 2 {
			return nil, &InvalidQueryError{Field: field, Value: q, Reason: "numeric arrays must be one lat,lng pair"}
		}
		return Query{NewCoordinates(q[0], q[1])}, nil
	case Location:
		if err := q.validate(field); err != nil {
			return nil, err
		}
		return Query{q}, nil
	case Query:
		return validateAll(field, q)
	case []Location:
		return validateAll(field, Query(q))
	default:
		return nil, &InvalidQueryError{Field: field, Value: v, Reason: fmt.Sprintf("unsupported query type %T", v)}
	}
}

// ParseQueryJSON decodes raw JSON with number precision preserved and
// validates it as a query set.
func ParseQueryJSON(field string, data []byte) (Query, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &InvalidQueryError{Field: field, Reason: "value is required"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &InvalidQueryError{Field: field, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	return ParseQuery(field, v)
}

func validateAll(field string, q Query) (Query, error) {
	if len(q) == 0 {
		return nil, &InvalidQueryError{Field: field, Reason: "query set must not be empty"}
	}
	for _, l := range q {
		if err := l.validate(field); err != nil {
			return nil, err
		}
	}
	return append(Query(nil), q...), nil
}

func parseEntries(field string, entries []any) (Query, error) {
	// A two-element all-numeric array is a single coordinate pair, not two
	// entries.
	if lat, lng, ok := asCoordinatePair(entries); ok {
		return Query{NewCoordinates(lat, lng)}, nil
	}

	if len(entries) == 0 {
		return nil, &InvalidQueryError{Field: field, Value: entries, Reason: "query set must not be empty"}
	}

	out := make(Query, 0, len(entries))
	for _, e := range entries {
		loc, err := parseEntry(field, e)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, nil
}

func parseEntry(field string, v any) (Location, error) {
	switch e := v.(type) {
	case string:
		return parseString(field, e)
	case map[string]any:
		return parseCoordinateObject(field, e)
	case []any:
		if lat, lng, ok := asCoordinatePair(e); ok {
			return NewCoordinates(lat, lng), nil
		}
		return Location{}, &InvalidQueryError{Field: field, Value: v, Reason: "nested arrays must be a two-element lat,lng pair"}
	case []float64:
		if len(e) == 2 {
			return NewCoordinates(e[0], e[1]), nil
		}
		return Location{}, &InvalidQueryError{Field: field, Value: v, Reason: "nested arrays must be a two-element lat,lng pair"}
	case Location:
		if err := e.validate(field); err != nil {
			return Location{}, err
		}
		return e, nil
	default:
		return Location{}, &InvalidQueryError{Field: field, Value: v, Reason: fmt.Sprintf("unsupported query entry type %T", v)}
	}
}

func parseString(field, s string) (Location, error) {
	if rest, ok := strings.CutPrefix(s, placeIDPrefix); ok {
		loc := Location{Kind: KindPlaceID, PlaceID: rest}
		if err := loc.validate(field); err != nil {
			return Location{}, err
		}
		return loc, nil
	}

	loc := Location{Kind: KindAddress, Address: s}
	if err := loc.validate(field); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Only lat and lng are read; extra keys are ignored.
func parseCoordinateObject(field string, m map[string]any) (Location, error) {
	latRaw, ok := m["lat"]
	if !ok {
		return Location{}, &InvalidQueryError{Field: field, Value: m, Reason: "coordinate object is missing lat"}
	}
	lngRaw, ok := m["lng"]
	if !ok {
		return Location{}, &InvalidQueryError{Field: field, Value: m, Reason: "coordinate object is missing lng"}
	}

	lat, ok := toFloat(latRaw)
	if !ok {
		return Location{}, &InvalidQueryError{Field: field, Value: latRaw, Reason: "lat must be numeric"}
	}
	lng, ok := toFloat(lngRaw)
	if !ok {
		return Location{}, &InvalidQueryError{Field: field, Value: lngRaw, Reason: "lng must be numeric"}
	}

	return NewCoordinates(lat, lng), nil
}

// asCoordinatePair reports whether entries form exactly one lat,lng pair.
func asCoordinatePair(entries []any) (lat, lng float64, ok bool) {
	if len(entries) != 2 {
		return 0, 0, false
	}

	lat, ok = toFloat(entries[0])
	if !ok {
		return 0, 0, false
	}
	lng, ok = toFloat(entries[1])
	if !ok {
		return 0, 0, false
	}
	return lat, lng, true
}

// toFloat coerces numbers, json.Number values and numeric strings to
// float64. It either converts or it does not; there is no partial outcome.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
