package mcp_test

import (
	"context"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	pensievemcp "github.com/pensieveco/pensieve/api/mcp"
	"github.com/pensieveco/pensieve/pkg/factstore"
	"github.com/pensieveco/pensieve/pkg/logger"
	"github.com/pensieveco/pensieve/pkg/recall"
	testutils "github.com/pensieveco/pensieve/pkg/utils/test"
)

// newStoreAndEngine builds a store and engine rooted in a fresh temp dir.
func newStoreAndEngine() (*factstore.Store, *recall.Engine, string) {
	GinkgoHelper()

	path := filepath.Join(GinkgoT().TempDir(), "memories.json")

	store, err := factstore.NewStore(factstore.Config{Path: path})
	Expect(err).NotTo(HaveOccurred())

	engine, err := recall.NewEngine(recall.Config{Store: store})
	Expect(err).NotTo(HaveOccurred())

	return store, engine, path
}

// connect builds a server from cfg and returns a live client session speaking
// to it over in-memory transports.
func connect(ctx context.Context, cfg pensievemcp.Config) *mcp.ClientSession {
	GinkgoHelper()

	server, err := pensievemcp.NewServer(cfg)
	Expect(err).NotTo(HaveOccurred())

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	go func() {
		defer GinkgoRecover()
		_ = server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(func() { _ = session.Close() })

	return session
}

// callText invokes a tool and returns its single text content plus the
// result's error flag.
func callText(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	GinkgoHelper()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	Expect(err).NotTo(HaveOccurred())
	Expect(res.Content).To(HaveLen(1))

	text, ok := res.Content[0].(*mcp.TextContent)
	Expect(ok).To(BeTrue())

	return text.Text, res.IsError
}

var _ = Describe("MCP Server", func() {
	var (
		store    *factstore.Store
		engine   *recall.Engine
		searcher *testutils.MockSearcher
	)

	BeforeEach(func() {
		store, engine, _ = newStoreAndEngine()
		searcher = testutils.NewMockSearcher()
	})

	Describe("NewServer", func() {
		It("returns an error when the fact store is nil", func() {
			_, err := pensievemcp.NewServer(pensievemcp.Config{
				Engine:   engine,
				Searcher: searcher,
				Logger:   logger.Nop(),
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("fact store is required"))
		})

		It("returns an error when the recall engine is nil", func() {
			_, err := pensievemcp.NewServer(pensievemcp.Config{
				Store:    store,
				Searcher: searcher,
				Logger:   logger.Nop(),
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("recall engine is required"))
		})

		It("returns an error when the searcher is nil", func() {
			_, err := pensievemcp.NewServer(pensievemcp.Config{
				Store:  store,
				Engine: engine,
				Logger: logger.Nop(),
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("searcher is required"))
		})

		It("returns an error when the logger is nil", func() {
			_, err := pensievemcp.NewServer(pensievemcp.Config{
				Store:    store,
				Engine:   engine,
				Searcher: searcher,
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("logger is required"))
		})

		It("creates a server with valid config", func() {
			server, err := pensievemcp.NewServer(pensievemcp.Config{
				Store:    store,
				Engine:   engine,
				Searcher: searcher,
				Logger:   logger.Nop(),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(server).NotTo(BeNil())
			Expect(server.Handler()).NotTo(BeNil())
		})

		It("skips dependency checks in noop mode", func() {
			server, err := pensievemcp.NewServer(pensievemcp.Config{Noop: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(server.Handler()).NotTo(BeNil())
		})
	})

	Describe("tool registration", func() {
		It("exposes the memory and web search tools", func() {
			ctx := context.Background()
			session := connect(ctx, pensievemcp.Config{
				Store:    store,
				Engine:   engine,
				Searcher: searcher,
				Logger:   logger.Nop(),
			})

			res, err := session.ListTools(ctx, nil)
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, 0, len(res.Tools))
			for _, tool := range res.Tools {
				names = append(names, tool.Name)
			}
			Expect(names).To(ConsistOf("remember", "recall", "web_search"))
		})

		It("registers web_search even without credentials", func() {
			searcher.Unconfigured = true

			ctx := context.Background()
			session := connect(ctx, pensievemcp.Config{
				Store:    store,
				Engine:   engine,
				Searcher: searcher,
				Logger:   logger.Nop(),
			})

			res, err := session.ListTools(ctx, nil)
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, 0, len(res.Tools))
			for _, tool := range res.Tools {
				names = append(names, tool.Name)
			}
			Expect(names).To(ContainElement("web_search"))
		})
	})
})
