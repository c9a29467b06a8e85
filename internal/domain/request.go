package domain

import "time"

// Request is a matrix request that passed validation. It is immutable after
// construction; build one with NewRequest.
type Request struct {
	origins      Query
	destinations Query
	options      Options
}

// NewRequest validates both query sets and the options against the given
// evaluation instant and returns the canonical request. Validation is
// fail-fast: the first defect aborts with no partial result.
func NewRequest(origins, destinations Query, opts Options, now time.Time) (*Request, error) {
	if len(origins) == 0 {
		return nil, &InvalidQueryError{Field: "origins", Reason: "query set must not be empty"}
	}
	if len(destinations) == 0 {
		return nil, &InvalidQueryError{Field: "destinations", Reason: "query set must not be empty"}
	}

	for _, l := range origins {
		if err := l.validate("origins"); err != nil {
			return nil, err
		}
	}
	for _, l := range destinations {
		if err := l.validate("destinations"); err != nil {
			return nil, err
		}
	}

	if err := opts.Validate(now); err != nil {
		return nil, err
	}

	return &Request{
		origins:      append(Query(nil), origins...),
		destinations: append(Query(nil), destinations...),
		options:      opts,
	}, nil
}

// Origins returns a copy of the origin query set.
func (r *Request) Origins() Query { return append(Query(nil), r.origins...) }

// Destinations returns a copy of the destination query set.
func (r *Request) Destinations() Query { return append(Query(nil), r.destinations...) }

func (r *Request) Options() Options { return r.options }

// Terms returns the wire form of all query terms, origins first.
func (r *Request) Terms() []string {
	return append(r.origins.Terms(), r.destinations.Terms()...)
}
