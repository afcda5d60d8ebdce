package servecmder

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/pensieveco/pensieve/pkg/config"
	"github.com/pensieveco/pensieve/pkg/logger"
)

const stdioLongDesc string = `Serve MCP over stdio.

Speaks the Model Context Protocol on stdin/stdout for agent runtimes that
spawn their MCP servers as subprocesses. Logs go to stderr so stdout stays
protocol-clean.

Example client entry:
  {"command": "pensieve", "args": ["serve", "stdio"]}`

const stdioShortDesc string = "Serve MCP over stdio"

type StdioCommander struct {
	memoryPath     string
	searchAPIKey   string
	searchEngineID string
	debug          bool
	configDir      string
}

func newStdioCmd() *cobra.Command {
	cmder := &StdioCommander{}

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: stdioShortDesc,
		Long:  stdioLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := resolveConfig(cmd, cmder.configDir)
			if err != nil {
				return err
			}
			cmder.memoryPath = v.GetString("memory.path")
			cmder.searchAPIKey = v.GetString("search.api_key")
			cmder.searchEngineID = v.GetString("search.engine_id")

			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryPath, &cmder.memoryPath)
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchAPIKey, &cmder.searchAPIKey)
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchEngineID, &cmder.searchEngineID)

	return cmd
}

func (c *StdioCommander) run(cmd *cobra.Command) error {
	zapLogger := logger.NewStderrLogger(c.debug)
	defer func() { _ = zapLogger.Sync() }()

	svcs, err := buildServices(c.memoryPath, c.searchAPIKey, c.searchEngineID, zapLogger)
	if err != nil {
		return err
	}

	zapLogger.Info("serving MCP over stdio")

	if err := svcs.mcp.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("stdio serving: %w", err)
	}

	return nil
}
