package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pensieveco/pensieve/pkg/factstore"
	"github.com/pensieveco/pensieve/pkg/recall"
	"github.com/pensieveco/pensieve/pkg/websearch"
)

// FactsResponse contains the full fact base in storage order.
type FactsResponse struct {
	Count int              `json:"count"`
	Facts []factstore.Fact `json:"facts"`
}

// UpsertFactRequest is the body for POST /v1/facts.
type UpsertFactRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RecallResponse is the structured form of a recall outcome. Message carries
// the same prose the MCP recall tool returns.
type RecallResponse struct {
	Kind    recall.Kind      `json:"kind"`
	Query   string           `json:"query"`
	Matches []factstore.Fact `json:"matches"`
	Message string           `json:"message"`
}

// SearchResponse contains web search hits for a query.
type SearchResponse struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Results []websearch.Result `json:"results"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListFacts returns every stored fact. A fact base that does not exist
// yet reads as empty; a corrupt one is a server-side error.
func (s *Server) handleListFacts(c *fiber.Ctx) error {
	fb, err := s.store.Load()
	if err != nil {
		if errors.Is(err, factstore.ErrNoStore) {
			return c.JSON(FactsResponse{Count: 0, Facts: []factstore.Fact{}})
		}

		var corrupt *factstore.CorruptError
		if errors.As(err, &corrupt) {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "fact base is corrupted"})
		}

		s.logger.Error("failed to load fact base", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load fact base"})
	}

	facts := fb.Facts()
	if facts == nil {
		facts = []factstore.Fact{}
	}

	return c.JSON(FactsResponse{Count: len(facts), Facts: facts})
}

// handleUpsertFact stores or overwrites a single fact.
func (s *Server) handleUpsertFact(c *fiber.Ctx) error {
	var req UpsertFactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.Key) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "key is required"})
	}

	if err := s.store.Upsert(req.Key, req.Value); err != nil {
		s.logger.Error("failed to store fact",
			zap.String("key", req.Key),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to store fact"})
	}

	return c.Status(fiber.StatusCreated).JSON(factstore.Fact{Key: req.Key, Value: req.Value})
}

// handleRecallEndpoint answers a recall query.
// Query parameters:
//   - q: keywords to match against fact keys and values. A blank q flows
//     through the engine and comes back as the empty-query outcome.
func (s *Server) handleRecallEndpoint(c *fiber.Ctx) error {
	query := c.Query("q")

	result := s.engine.Recall(c.Context(), query)
	if result.Kind == recall.KindStorageError {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to access fact base"})
	}

	matches := result.Matches
	if matches == nil {
		matches = []factstore.Fact{}
	}

	return c.JSON(RecallResponse{
		Kind:    result.Kind,
		Query:   result.Query,
		Matches: matches,
		Message: result.Message(),
	})
}

// handleSearchEndpoint handles GET /v1/search requests.
// Query parameters:
//   - q (required): the web search query text
//   - num (optional, default 5): number of results to return
func (s *Server) handleSearchEndpoint(c *fiber.Ctx) error {
	// Verify search is configured
	if !s.searcher.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "web search is not configured: API key and search engine ID are required",
		})
	}

	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "q parameter is required"})
	}

	num := websearch.DefaultResults
	if numStr := c.Query("num"); numStr != "" {
		parsed, err := strconv.Atoi(numStr)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "num must be a positive integer"})
		}
		num = parsed
	}

	results, err := s.searcher.Search(c.Context(), query, num)
	if err != nil {
		s.logger.Error("web search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "search failed"})
	}

	if results == nil {
		results = []websearch.Result{}
	}

	return c.JSON(SearchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}
