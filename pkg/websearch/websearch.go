// Package websearch provides web lookups for questions the fact base cannot
// answer.
//
// The [Searcher] interface is intentionally minimal: Configured reports
// whether credentials are present, Search runs the query. The Google
// implementation talks to the Programmable Search Engine API and needs both
// an API key and an engine ID; without them Search short-circuits before any
// network traffic.
package websearch

import (
	"context"
	"errors"
)

// DefaultResults is the number of hits returned when the caller does not ask
// for a specific count.
const DefaultResults = 5

// maxResults is the per-request cap imposed by the Custom Search API.
const maxResults = 10

// ErrNotConfigured is returned when a search is attempted without
// credentials.
var ErrNotConfigured = errors.New("web search not configured")

// Result is a single web search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Searcher performs web searches.
type Searcher interface {
	// Configured reports whether the searcher has usable credentials.
	Configured() bool

	// Search returns up to num hits for the query. A num of zero or less
	// means DefaultResults.
	Search(ctx context.Context, query string, num int) ([]Result, error)
}

// clampNum normalizes a requested result count to the API's valid range.
func clampNum(num int) int {
	if num <= 0 {
		return DefaultResults
	}
	if num > maxResults {
		return maxResults
	}
	return num
}
