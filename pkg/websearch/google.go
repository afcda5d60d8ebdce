package websearch

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// GoogleConfig holds configuration for the Google searcher.
type GoogleConfig struct {
	// APIKey is the Google API key.
	APIKey string

	// EngineID is the Programmable Search Engine ID (cx).
	EngineID string

	// Logger receives search activity. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Google implements Searcher against the Google Custom Search API.
type Google struct {
	apiKey   string
	engineID string
	logger   *zap.Logger
}

// NewGoogle creates a Google searcher. Missing credentials are not an error
// here; the searcher is created unconfigured and reports that on use, so the
// web search tool can always be registered.
func NewGoogle(config GoogleConfig) *Google {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Google{
		apiKey:   config.APIKey,
		engineID: config.EngineID,
		logger:   logger,
	}
}

// Configured reports whether both credentials are present.
func (g *Google) Configured() bool {
	return g.apiKey != "" && g.engineID != ""
}

// Search runs the query against the Programmable Search Engine and returns
// up to num hits. Returns ErrNotConfigured without touching the network when
// credentials are missing.
func (g *Google) Search(ctx context.Context, query string, num int) ([]Result, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	num = clampNum(num)

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating search client: %w", err)
	}

	resp, err := svc.Cse.List().
		Q(query).
		Cx(g.engineID).
		Num(int64(num)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("executing search: %w", err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}

	g.logger.Info("web search completed",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)

	return results, nil
}
