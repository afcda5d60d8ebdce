// Package mcp provides an MCP (Model Context Protocol) server for the pensieve system.
package mcp

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pensieveco/pensieve/pkg/factstore"
	"github.com/pensieveco/pensieve/pkg/recall"
	"github.com/pensieveco/pensieve/pkg/utils"
	"github.com/pensieveco/pensieve/pkg/websearch"
)

type Config struct {
	// Store persists facts for the remember tool
	Store *factstore.Store

	// Engine answers recall queries over the fact base
	Engine *recall.Engine

	// Searcher performs lookups for the web_search tool. The tool is
	// registered even when the searcher has no credentials; it then
	// reports its unconfigured state per call.
	Searcher websearch.Searcher

	// Noop for empty MCP server
	Noop bool

	// Logger is the configured zap logger
	Logger *zap.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the memory and web search tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pensieve",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if !c.Noop {
		if c.Store == nil {
			return nil, errors.New("fact store is required")
		}
		if c.Engine == nil {
			return nil, errors.New("recall engine is required")
		}
		if c.Searcher == nil {
			return nil, errors.New("searcher is required")
		}
		if c.Logger == nil {
			return nil, errors.New("logger is required")
		}

		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        rememberToolName,
			Description: rememberDescription,
		}, s.handleRemember)

		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        recallToolName,
			Description: recallDescription,
		}, s.handleRecall)

		// web_search is always registered so the tool surface is stable;
		// without credentials it answers with its configuration message.
		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        webSearchToolName,
			Description: webSearchDescription,
		}, s.handleWebSearch)

		if !c.Searcher.Configured() {
			c.Logger.Warn("web search credentials missing; web_search will report it is not configured")
		}
	}

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves MCP over the given transport until the client disconnects or
// the context is canceled. This is the stdio serving path; agent runtimes
// spawn the process and speak the protocol over its pipes.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}
