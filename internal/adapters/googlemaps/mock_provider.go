package googlemaps

import (
	"context"
	"distance-matrix-service/internal/domain"
)

// MockProvider returns a canned matrix reply and records what it was asked
// for. It backs service and handler tests.
type MockProvider struct {
	Response    *domain.RawResponse
	Err         error
	LastRequest *domain.Request
	Calls       int
}

func (m *MockProvider) FetchMatrix(ctx context.Context, req *domain.Request) (*domain.RawResponse, error) {
	m.Calls++
	m.LastRequest = req

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}
