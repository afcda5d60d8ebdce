package factstore

import (
	"errors"
	"fmt"
)

// ErrNoStore is returned by Load when the fact base file does not exist yet.
// Callers treat this as "nothing remembered so far", not as a failure.
var ErrNoStore = errors.New("fact base does not exist")

// CorruptError reports a fact base file that exists but cannot be used.
// NotObject distinguishes a well-formed JSON document of the wrong shape
// (array, string, number) from unparseable bytes.
type CorruptError struct {
	Path      string
	NotObject bool
	Err       error
}

func (e *CorruptError) Error() string {
	if e.NotObject {
		return fmt.Sprintf("fact base %s is not a JSON object", e.Path)
	}

	return fmt.Sprintf("fact base %s holds invalid JSON", e.Path)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}
