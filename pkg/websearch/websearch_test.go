package websearch_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/api/googleapi"

	"github.com/pensieveco/pensieve/pkg/websearch"
)

var _ = Describe("Google", func() {
	Describe("Configured", func() {
		It("is false without any credentials", func() {
			g := websearch.NewGoogle(websearch.GoogleConfig{})
			Expect(g.Configured()).To(BeFalse())
		})

		It("is false with only an API key", func() {
			g := websearch.NewGoogle(websearch.GoogleConfig{APIKey: "key"})
			Expect(g.Configured()).To(BeFalse())
		})

		It("is false with only an engine ID", func() {
			g := websearch.NewGoogle(websearch.GoogleConfig{EngineID: "cx"})
			Expect(g.Configured()).To(BeFalse())
		})

		It("is true with both credentials", func() {
			g := websearch.NewGoogle(websearch.GoogleConfig{APIKey: "key", EngineID: "cx"})
			Expect(g.Configured()).To(BeTrue())
		})
	})

	Describe("Search", func() {
		It("short-circuits when unconfigured", func() {
			g := websearch.NewGoogle(websearch.GoogleConfig{})

			_, err := g.Search(context.Background(), "anything", 5)
			Expect(err).To(MatchError(websearch.ErrNotConfigured))
		})
	})
})

var _ = Describe("FormatResults", func() {
	It("reports when nothing was found", func() {
		Expect(websearch.FormatResults("query", nil)).To(Equal("No results found."))
	})

	It("renders numbered blocks with title, link, and snippet", func() {
		results := []websearch.Result{
			{Title: "First Hit", Link: "https://example.com/1", Snippet: "A snippet."},
			{Title: "Second Hit", Link: "https://example.com/2", Snippet: "Another snippet."},
		}

		out := websearch.FormatResults("go testing", results)
		Expect(out).To(Equal("Search results for 'go testing':\n\n" +
			"1. First Hit\n   Link: https://example.com/1\n   Snippet: A snippet.\n\n" +
			"2. Second Hit\n   Link: https://example.com/2\n   Snippet: Another snippet."))
	})

	It("flattens snippet newlines", func() {
		results := []websearch.Result{
			{Title: "Hit", Link: "https://example.com", Snippet: "line one\nline   two"},
		}

		out := websearch.FormatResults("q", results)
		Expect(out).To(ContainSubstring("Snippet: line one line two"))
	})

	It("fills placeholders for absent fields", func() {
		results := []websearch.Result{{}}

		out := websearch.FormatResults("q", results)
		Expect(out).To(Equal("Search results for 'q':\n\n" +
			"1. No Title\n   Link: #\n   Snippet: No Snippet"))
	})
})

var _ = Describe("FormatError", func() {
	It("renders the not-configured message", func() {
		out := websearch.FormatError(websearch.ErrNotConfigured)
		Expect(out).To(Equal("Web search is not configured. Missing API key or search engine ID."))
	})

	It("unwraps to find the not-configured sentinel", func() {
		wrapped := fmt.Errorf("running search: %w", websearch.ErrNotConfigured)
		out := websearch.FormatError(wrapped)
		Expect(out).To(Equal("Web search is not configured. Missing API key or search engine ID."))
	})

	It("renders API errors with their status code and message", func() {
		apiErr := &googleapi.Error{Code: 403, Message: "Daily Limit Exceeded"}
		out := websearch.FormatError(apiErr)
		Expect(out).To(Equal("Error performing search: 403 Daily Limit Exceeded"))
	})

	It("falls back to the status text when the API error has no message", func() {
		apiErr := &googleapi.Error{Code: 429}
		out := websearch.FormatError(apiErr)
		Expect(out).To(Equal("Error performing search: 429 Too Many Requests"))
	})

	It("renders wrapped API errors", func() {
		wrapped := errors.Join(errors.New("executing search"), &googleapi.Error{Code: 500, Message: "Internal error"})
		out := websearch.FormatError(wrapped)
		Expect(out).To(Equal("Error performing search: 500 Internal error"))
	})

	It("renders unknown failures generically", func() {
		out := websearch.FormatError(errors.New("dns blew up"))
		Expect(out).To(Equal("An unexpected error occurred during the search."))
	})
})
