package dto

import "encoding/json"

// MatrixRequest keeps origins, destinations and options as raw JSON: both
// query sides are polymorphic and options carry their own decoding rules.
// The alias lists are untyped on purpose, non-string entries sanitize to
// the unknown label instead of failing the request.
type MatrixRequest struct {
	Origins          json.RawMessage `json:"origins"`
	Destinations     json.RawMessage `json:"destinations"`
	OriginNames      []any           `json:"origin_names"`
	DestinationNames []any           `json:"destination_names"`
	Options          json.RawMessage `json:"options"`
}

// MatrixResponse maps origin label to destination label to kilometers,
// with null marking pairs the provider could not route.
type MatrixResponse struct {
	Artifact          string                     `json:"artifact"`
	RequestTime       string                     `json:"request_time"`
	OriginLabels      []string                   `json:"origin_labels"`
	DestinationLabels []string                   `json:"destination_labels"`
	Kilometers        map[string]map[string]*int `json:"kilometers"`
	ExportPath        string                     `json:"export_path,omitempty"`
}
