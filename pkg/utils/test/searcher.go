package testutils

import (
	"context"

	"github.com/pensieveco/pensieve/pkg/websearch"
)

// MockSearcher is a test searcher that records queries and returns
// configurable results.
type MockSearcher struct {
	// Queries accumulates all queries passed to Search.
	Queries []string

	// Results is returned by Search for any query.
	Results []websearch.Result

	// Err causes Search to return an error.
	Err error

	// Unconfigured makes the searcher report missing credentials.
	Unconfigured bool
}

// NewMockSearcher creates a new mock searcher.
func NewMockSearcher() *MockSearcher {
	return &MockSearcher{
		Queries: make([]string, 0),
		Results: make([]websearch.Result, 0),
	}
}

func (m *MockSearcher) Configured() bool {
	return !m.Unconfigured
}

func (m *MockSearcher) Search(_ context.Context, query string, _ int) ([]websearch.Result, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}
