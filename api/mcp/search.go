package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pensieveco/pensieve/pkg/websearch"
)

var (
	webSearchToolName    = "web_search"
	webSearchDescription = "Search the public web for current information, facts, or external resources. Consider this whenever up-to-date information would help, or when the answer likely lives outside your internal knowledge. Also useful for checking facts or finding specific URLs."
)

// WebSearchInput represents the input arguments for the web_search tool.
type WebSearchInput struct {
	Query string `json:"query" jsonschema:"the keywords or question to search the web for"`
}

// handleWebSearch processes a web search request. Missing credentials and
// upstream failures both come back as prose so agents can relay them.
func (s *Server) handleWebSearch(ctx context.Context, _ *mcp.CallToolRequest, input WebSearchInput) (*mcp.CallToolResult, any, error) {
	logger := s.config.Logger

	if !s.config.Searcher.Configured() {
		logger.Warn("web search requested without credentials")
		return textResult(websearch.FormatError(websearch.ErrNotConfigured)), nil, nil
	}

	logger.Debug("MCP web search request", zap.String("query", input.Query))

	results, err := s.config.Searcher.Search(ctx, input.Query, websearch.DefaultResults)
	if err != nil {
		logger.Error("web search failed",
			zap.String("query", input.Query),
			zap.Error(err),
		)
		return textResult(websearch.FormatError(err)), nil, nil
	}

	return textResult(websearch.FormatResults(input.Query, results)), nil, nil
}
