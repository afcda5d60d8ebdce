package recall

import (
	"fmt"
	"strings"

	"github.com/pensieveco/pensieve/pkg/factstore"
)

// Kind classifies the outcome of a recall. Every kind renders to a distinct
// message so a caller (human or agent) can always tell which case occurred.
type Kind string

const (
	// KindMatches means one or more facts matched the query.
	KindMatches Kind = "matches"

	// KindNoMatches means the fact base was searched and nothing matched.
	KindNoMatches Kind = "no_matches"

	// KindEmptyQuery means the query held no usable keywords.
	KindEmptyQuery Kind = "empty_query"

	// KindNoStore means nothing has been remembered yet.
	KindNoStore Kind = "no_store"

	// KindCorrupt means the fact base exists but could not be decoded.
	KindCorrupt Kind = "corrupt"

	// KindStorageError means the fact base could not be read at all.
	KindStorageError Kind = "storage_error"
)

// Result is the outcome of a recall query.
type Result struct {
	Kind    Kind             `json:"kind"`
	Query   string           `json:"query"`
	Matches []factstore.Fact `json:"matches,omitempty"`

	// NotObject refines KindCorrupt: the document was valid JSON of the
	// wrong shape rather than unparseable bytes.
	NotObject bool `json:"-"`
}

// Message renders the result as the natural-language string returned at the
// tool boundary.
func (r Result) Message() string {
	switch r.Kind {
	case KindEmptyQuery:
		return "Please provide keywords to search for in memories."

	case KindNoStore:
		return "I don't have any memories stored yet."

	case KindCorrupt:
		if r.NotObject {
			return "Memory storage is corrupted (not a JSON object). Cannot look anything up."
		}
		return "Memory storage is corrupted (invalid JSON). Cannot look anything up."

	case KindStorageError:
		return "Sorry, I encountered an error trying to access memories."

	case KindNoMatches:
		return fmt.Sprintf("I couldn't find any memories where the key or value contained keywords from '%s'.", r.Query)

	case KindMatches:
		var b strings.Builder
		fmt.Fprintf(&b, "Here are the memories I found related to '%s':", r.Query)
		for _, f := range r.Matches {
			fmt.Fprintf(&b, "\n- %s: %s", f.Key, f.Value)
		}
		return b.String()

	default:
		return "Sorry, I encountered an error trying to access memories."
	}
}
