package websearch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// FormatResults renders search hits as the string returned at the tool
// boundary: a header, then numbered blocks with title, link, and snippet.
func FormatResults(query string, results []Result) string {
	if len(results) == 0 {
		return "No results found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for '%s':\n\n", query)

	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "No Title"
		}
		link := r.Link
		if link == "" {
			link = "#"
		}
		snippet := flattenSnippet(r.Snippet)
		if snippet == "" {
			snippet = "No Snippet"
		}
		fmt.Fprintf(&b, "%d. %s\n   Link: %s\n   Snippet: %s\n\n",
			i+1, title, link, snippet)
	}

	return strings.TrimSpace(b.String())
}

// FormatError renders a search failure as the string returned at the tool
// boundary. The underlying error never crosses this function; callers log it
// and hand the string up.
func FormatError(err error) string {
	if errors.Is(err, ErrNotConfigured) {
		return "Web search is not configured. Missing API key or search engine ID."
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Code)
		}
		return fmt.Sprintf("Error performing search: %d %s", apiErr.Code, msg)
	}

	return "An unexpected error occurred during the search."
}

// flattenSnippet collapses the whitespace the API sprinkles through
// snippets, including newlines, into single spaces.
func flattenSnippet(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
