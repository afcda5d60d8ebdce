package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

var (
	rememberToolName    = "remember"
	rememberDescription = "Store a user-specific fact, preference, or detail as a key-value pair in persistent memory. Provide a concise, descriptive snake_case key (e.g. 'favorite_color', 'project_a_deadline') and the value to store. Store context proactively when it seems relevant for future interactions."

	recallToolName    = "recall"
	recallDescription = "Search stored memories for user-specific information. Keywords from the query are matched against both memory keys and values. Use this BEFORE answering questions about the user's preferences, past statements, or personal context."
)

// RememberInput represents the input arguments for the MCP remember tool.
type RememberInput struct {
	Key   string `json:"key" jsonschema:"a short, descriptive identifier for the fact (use underscores for spaces)"`
	Value string `json:"value" jsonschema:"the information to store"`
}

// RecallInput represents the input arguments for the MCP recall tool.
type RecallInput struct {
	Query string `json:"query" jsonschema:"keywords to search for within memory keys and values"`
}

// handleRemember stores one fact and confirms in prose. A write failure is
// logged and reported as prose too; no Go error crosses the tool boundary.
func (s *Server) handleRemember(_ context.Context, _ *mcp.CallToolRequest, input RememberInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Key) == "" {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: "key is required"},
			},
		}, nil, nil
	}

	if err := s.config.Store.Upsert(input.Key, input.Value); err != nil {
		s.config.Logger.Error("failed to store fact",
			zap.String("key", input.Key),
			zap.Error(err),
		)
		return textResult("Sorry, I encountered an error trying to save that memory."), nil, nil
	}

	return textResult(fmt.Sprintf("Okay, I've remembered that '%s' is '%s'", input.Key, input.Value)), nil, nil
}

// handleRecall answers a recall query. Every outcome, including missing or
// corrupt storage, comes back as prose; the engine logs the cause.
func (s *Server) handleRecall(ctx context.Context, _ *mcp.CallToolRequest, input RecallInput) (*mcp.CallToolResult, any, error) {
	result := s.config.Engine.Recall(ctx, input.Query)
	return textResult(result.Message()), nil, nil
}

// textResult wraps prose as a single-content tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
