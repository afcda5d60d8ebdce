// Package factstore persists the fact base: a single human-readable JSON
// document mapping fact keys to values.
//
// The document is the unit of storage. Every change loads the whole file,
// merges the new fact in, and atomically rewrites it, so the file on disk is
// always a complete, well-formed snapshot that users can read and hand-edit.
// Insertion order of keys is preserved end to end: facts come back in the
// order they were first remembered, both from Load and in the rewritten file.
//
// Reads and writes treat damage differently. Load reports a missing file
// ([ErrNoStore]) or a damaged one ([CorruptError]) explicitly so callers can
// tell the user what happened. Upsert starts over from an empty document in
// those cases and logs a warning; a broken file never blocks remembering
// something new.
package factstore

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fact is a single key/value pair from the fact base.
type Fact struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FactBase is the in-memory form of the fact document. Keys keep their
// insertion order. Values are usually strings, but hand-edited files may
// hold other JSON values; those are preserved as-is on rewrite and rendered
// through their JSON form everywhere a string is needed.
type FactBase struct {
	entries *orderedmap.OrderedMap[string, any]
}

// NewFactBase returns an empty fact base.
func NewFactBase() *FactBase {
	return &FactBase{
		entries: orderedmap.New[string, any](),
	}
}

// ParseFactBase decodes raw document bytes into a FactBase. The path is only
// used to label errors. Returns a *CorruptError when the bytes are not valid
// JSON or decode to something other than an object.
func ParseFactBase(path string, data []byte) (*FactBase, error) {
	// Probe shape first so "valid JSON, wrong shape" and "not JSON at all"
	// surface as distinct conditions.
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}

	if _, ok := probe.(map[string]any); !ok {
		return nil, &CorruptError{Path: path, NotObject: true}
	}

	entries := orderedmap.New[string, any]()
	if err := entries.UnmarshalJSON(data); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}

	return &FactBase{entries: entries}, nil
}

// Set stores or overwrites the value for a key. Overwriting keeps the key's
// original position in the document.
func (fb *FactBase) Set(key, value string) {
	fb.entries.Set(key, value)
}

// Get returns the rendered value for a key.
func (fb *FactBase) Get(key string) (string, bool) {
	v, ok := fb.entries.Get(key)
	if !ok {
		return "", false
	}

	return renderValue(v), true
}

// Has reports whether a key exists.
func (fb *FactBase) Has(key string) bool {
	_, ok := fb.entries.Get(key)
	return ok
}

// Len returns the number of facts.
func (fb *FactBase) Len() int {
	return fb.entries.Len()
}

// Keys returns all fact keys in insertion order.
func (fb *FactBase) Keys() []string {
	keys := make([]string, 0, fb.entries.Len())
	for pair := fb.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Facts returns all facts in insertion order with values rendered as strings.
func (fb *FactBase) Facts() []Fact {
	facts := make([]Fact, 0, fb.entries.Len())
	for pair := fb.entries.Oldest(); pair != nil; pair = pair.Next() {
		facts = append(facts, Fact{
			Key:   pair.Key,
			Value: renderValue(pair.Value),
		})
	}

	return facts
}

// MarshalJSON encodes the fact base as a JSON object in insertion order.
func (fb *FactBase) MarshalJSON() ([]byte, error) {
	return json.Marshal(fb.entries)
}

// renderValue produces the string form of a stored value. Strings pass
// through untouched; anything else renders as compact JSON, matching how it
// appears in the document.
func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(b)
}
