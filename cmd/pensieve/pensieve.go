// Package pensievecmder
package pensievecmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/pensieveco/pensieve/cmd/pensieve/config"
	factscmder "github.com/pensieveco/pensieve/cmd/pensieve/facts"
	recallcmder "github.com/pensieveco/pensieve/cmd/pensieve/recall"
	remembercmder "github.com/pensieveco/pensieve/cmd/pensieve/remember"
	servecmder "github.com/pensieveco/pensieve/cmd/pensieve/serve"
	watchcmder "github.com/pensieveco/pensieve/cmd/pensieve/watch"
	versioncmder "github.com/pensieveco/pensieve/cmd/version"
)

const pensieveLongDesc string = `Pensieve is persistent memory and web search for your agents.

Facts live in a plain JSON file and are served to agents over MCP:
  pensieve serve           Run the HTTP server (REST API + MCP endpoint)
  pensieve serve stdio     Speak MCP over stdio for subprocess runtimes
  pensieve remember        Store a fact from the command line
  pensieve recall          Search stored facts
  pensieve facts           List everything pensieve knows`

const pensieveShortDesc string = "Pensieve - Agent Memory"

func NewPensieveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pensieve",
		Short: pensieveShortDesc,
		Long:  pensieveLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Config directory (default: ./.pensieve or ~/.pensieve)")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(remembercmder.NewRememberCmd())
	cmd.AddCommand(recallcmder.NewRecallCmd())
	cmd.AddCommand(factscmder.NewFactsCmd())
	cmd.AddCommand(watchcmder.NewWatchCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
