package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure categories this package reports.
// Callers branch with errors.Is; the typed errors below carry the detail.
var (
	ErrInvalidQuery         = errors.New("invalid query")
	ErrMalformedResponse    = errors.New("malformed matrix response")
	ErrUnsupportedAttribute = errors.New("unsupported travel attribute")
	ErrUpstream             = errors.New("matrix service request failed")
)

// InvalidQueryError reports a rejected request payload. Field names the
// offending payload field and Value carries the rejected input.
type InvalidQueryError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidQueryError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidQueryError) Unwrap() error { return ErrInvalidQuery }

// MalformedResponseError reports a structurally inconsistent matrix response.
// Row is the zero-based index of the offending row, or -1 when the defect is
// not specific to one row.
type MalformedResponseError struct {
	Row    int
	Reason string
}

func (e *MalformedResponseError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("malformed matrix response: %s", e.Reason)
	}
	return fmt.Sprintf("malformed matrix response: row %d: %s", e.Row, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return ErrMalformedResponse }

// UpstreamError reports a matrix service reply whose top-level status is not OK.
type UpstreamError struct {
	Status  string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("matrix service request failed: status %s", e.Status)
	}
	return fmt.Sprintf("matrix service request failed: status %s: %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
