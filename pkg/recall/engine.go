// Package recall answers keyword queries against the fact base.
//
// Matching is symmetric keyword overlap: a fact is recalled when the query
// shares at least one whitespace-delimited, lowercased token with the fact's
// key or with its value. There is no ranking; matches come back in fact base
// order, so recall output is stable for a given document.
//
// Recall never returns a Go error. Every condition, including a missing or
// corrupt fact base, is classified into a [Result] whose Message renders a
// distinct human-readable string. Failures are logged here with full detail
// and surfaced upward only in that softened form.
package recall

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pensieveco/pensieve/pkg/factstore"
)

// Loader supplies the current fact base document. *factstore.Store satisfies
// this.
type Loader interface {
	Load() (*factstore.FactBase, error)
	Path() string
}

// Config holds configuration for the recall engine.
type Config struct {
	// Store loads the fact base. Required.
	Store Loader

	// Logger receives engine activity. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Engine evaluates recall queries against a fact store.
type Engine struct {
	store  Loader
	logger *zap.Logger
}

// NewEngine creates a recall engine.
func NewEngine(config Config) (*Engine, error) {
	if config.Store == nil {
		return nil, errors.New("fact store is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		store:  config.Store,
		logger: logger,
	}, nil
}

// Recall reloads the fact base and finds every fact whose key or value
// shares a keyword with the query. The document is read fresh on each call
// so externally edited facts are visible immediately.
func (e *Engine) Recall(_ context.Context, query string) Result {
	result := Result{Query: query}

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		result.Kind = KindEmptyQuery
		return result
	}

	fb, err := e.store.Load()
	if err != nil {
		return e.classifyLoadError(query, err)
	}

	for _, fact := range fb.Facts() {
		if matchesFact(queryTokens, fact) {
			result.Matches = append(result.Matches, fact)
		}
	}

	if len(result.Matches) == 0 {
		result.Kind = KindNoMatches
		e.logger.Debug("no memories matched",
			zap.String("query", query),
			zap.Int("facts", fb.Len()),
		)
		return result
	}

	result.Kind = KindMatches
	e.logger.Info("memories recalled",
		zap.String("query", query),
		zap.Int("count", len(result.Matches)),
	)

	return result
}

// classifyLoadError maps a store failure onto the result taxonomy. The
// distinction matters at the tool boundary: "nothing stored yet" invites the
// caller to start remembering, while a corrupt document needs human
// attention.
func (e *Engine) classifyLoadError(query string, err error) Result {
	result := Result{Query: query}

	var corrupt *factstore.CorruptError
	switch {
	case errors.Is(err, factstore.ErrNoStore):
		result.Kind = KindNoStore
		e.logger.Debug("fact base does not exist yet", zap.String("path", e.store.Path()))

	case errors.As(err, &corrupt):
		result.Kind = KindCorrupt
		result.NotObject = corrupt.NotObject
		e.logger.Warn("fact base is corrupt",
			zap.String("path", e.store.Path()),
			zap.Error(err),
		)

	default:
		result.Kind = KindStorageError
		e.logger.Error("fact base could not be read",
			zap.String("path", e.store.Path()),
			zap.Error(err),
		)
	}

	return result
}

// matchesFact reports whether a fact should be recalled for the query
// tokens: the query shares at least one token with the fact's key or with
// its value.
func matchesFact(query TokenSet, fact factstore.Fact) bool {
	if query.Intersects(Tokenize(fact.Key)) {
		return true
	}

	return query.Intersects(Tokenize(fact.Value))
}
