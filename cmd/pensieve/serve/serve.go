// Package servecmder provides the serve command for running the pensieve server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pensieveco/pensieve/api"
	pensievemcp "github.com/pensieveco/pensieve/api/mcp"
	"github.com/pensieveco/pensieve/pkg/config"
	"github.com/pensieveco/pensieve/pkg/factstore"
	"github.com/pensieveco/pensieve/pkg/logger"
	"github.com/pensieveco/pensieve/pkg/recall"
	"github.com/pensieveco/pensieve/pkg/websearch"
)

const serveLongDesc string = `Run the pensieve server.

Serves the REST API and the MCP endpoint on one listener:
  GET  /ping         Health check
  GET  /v1/facts     List stored facts
  POST /v1/facts     Store a fact
  GET  /v1/recall    Search stored facts
  GET  /v1/search    Web search
  ALL  /mcp          MCP streamable HTTP endpoint

Use "pensieve serve stdio" to speak MCP over stdio instead, for agent
runtimes that spawn their servers as subprocesses.`

const serveShortDesc string = "Run the pensieve server"

type ServeCommander struct {
	listen         string
	memoryPath     string
	searchAPIKey   string
	searchEngineID string
	debug          bool
	configDir      string
	logger         *zap.Logger
}

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			cmder.configDir, err = cmd.Flags().GetString("config-dir")
			if err != nil {
				return fmt.Errorf("could not get config-dir flag: %w", err)
			}

			v, err := resolveConfig(cmd, cmder.configDir)
			if err != nil {
				return err
			}
			cmder.listen = v.GetString("api.listen")
			cmder.memoryPath = v.GetString("memory.path")
			cmder.searchAPIKey = v.GetString("search.api_key")
			cmder.searchEngineID = v.GetString("search.engine_id")

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryPath, &cmder.memoryPath)
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchAPIKey, &cmder.searchAPIKey)
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchEngineID, &cmder.searchEngineID)

	cmd.AddCommand(newStdioCmd())

	return cmd
}

// resolveConfig builds the viper precedence chain (flags > env > config file
// > defaults) for serve-family commands. Flags absent from cmd are skipped.
func resolveConfig(cmd *cobra.Command, configDir string) (*viper.Viper, error) {
	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, []string{
		config.FlagListen,
		config.FlagMemoryPath,
		config.FlagSearchAPIKey,
		config.FlagSearchEngineID,
	})

	return v, nil
}

// services holds the shared domain components behind both serving modes.
type services struct {
	store    *factstore.Store
	engine   *recall.Engine
	searcher *websearch.Google
	mcp      *pensievemcp.Server
}

// buildServices wires the fact store, recall engine, searcher, and MCP
// server from resolved configuration.
func buildServices(memoryPath, apiKey, engineID string, zapLogger *zap.Logger) (*services, error) {
	path, err := factstore.ResolvePath(memoryPath)
	if err != nil {
		return nil, fmt.Errorf("resolving fact base path: %w", err)
	}

	store, err := factstore.NewStore(factstore.Config{
		Path:   path,
		Logger: zapLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating fact store: %w", err)
	}

	engine, err := recall.NewEngine(recall.Config{
		Store:  store,
		Logger: zapLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating recall engine: %w", err)
	}

	searcher := websearch.NewGoogle(websearch.GoogleConfig{
		APIKey:   apiKey,
		EngineID: engineID,
		Logger:   zapLogger,
	})

	mcpServer, err := pensievemcp.NewServer(pensievemcp.Config{
		Store:    store,
		Engine:   engine,
		Searcher: searcher,
		Logger:   zapLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating MCP server: %w", err)
	}

	zapLogger.Info("using fact base", zap.String("path", path))

	return &services{
		store:    store,
		engine:   engine,
		searcher: searcher,
		mcp:      mcpServer,
	}, nil
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	svcs, err := buildServices(c.memoryPath, c.searchAPIKey, c.searchEngineID, c.logger)
	if err != nil {
		return err
	}

	apiConfig := api.Config{
		ListenAddr: c.listen,
	}
	apiServer, err := api.NewServer(apiConfig, svcs.store, svcs.engine, svcs.searcher, svcs.mcp.Handler(), c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	defer func() { _ = apiServer.Shutdown() }()

	errChan := make(chan error, 1)

	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return nil
	}
}
