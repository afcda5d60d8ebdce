package recall

import "strings"

// TokenSet is a set of lowercased keywords.
type TokenSet map[string]struct{}

// Tokenize lowercases text and splits it on whitespace into a token set.
// Tokens are whole whitespace-delimited words; no stemming, no punctuation
// stripping. "Favorite_Color" tokenizes to the single token
// "favorite_color".
func Tokenize(text string) TokenSet {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return nil
	}

	tokens := make(TokenSet, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}

	return tokens
}

// Intersects reports whether the two sets share at least one token.
func (ts TokenSet) Intersects(other TokenSet) bool {
	// Iterate the smaller set.
	small, large := ts, other
	if len(large) < len(small) {
		small, large = large, small
	}

	for t := range small {
		if _, ok := large[t]; ok {
			return true
		}
	}

	return false
}
