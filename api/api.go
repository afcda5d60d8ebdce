package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pensieveco/pensieve/pkg/factstore"
	"github.com/pensieveco/pensieve/pkg/recall"
	"github.com/pensieveco/pensieve/pkg/websearch"
)

// Server is the API server for managing and querying the pensieve system
type Server struct {
	config   Config
	store    *factstore.Store
	engine   *recall.Engine
	searcher websearch.Searcher
	logger   *zap.Logger
	app      *fiber.App
}

// NewServer creates a new API server.
// The store, engine, and searcher are injected to allow sharing with other
// components (e.g., the MCP server). The mcpHandler is mounted under /mcp
// when non-nil so one listener serves both surfaces.
func NewServer(config Config, store *factstore.Store, engine *recall.Engine, searcher websearch.Searcher, mcpHandler http.Handler, logger *zap.Logger) (*Server, error) {
	if store == nil {
		return nil, errors.New("fact store is required")
	}
	if engine == nil {
		return nil, errors.New("recall engine is required")
	}
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		store:    store,
		engine:   engine,
		searcher: searcher,
		logger:   logger,
		app:      app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/v1/facts", s.handleListFacts)
	app.Post("/v1/facts", s.handleUpsertFact)
	app.Get("/v1/recall", s.handleRecallEndpoint)
	app.Get("/v1/search", s.handleSearchEndpoint)

	if mcpHandler != nil {
		app.All("/mcp", adaptor.HTTPHandler(mcpHandler))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
