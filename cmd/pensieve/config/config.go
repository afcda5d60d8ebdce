// Package configcmder provides the config command for managing persistent
// pensieve configuration stored in the .pensieve/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent pensieve configuration.

Configuration is stored as config.toml in the .pensieve/ directory and
provides default values for command flags. CLI flags and PENSIEVE_*
environment variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  memory.path, api.listen,
  search.api_key, search.engine_id

Use subcommands to get, set, or list configuration values:
  pensieve config set <key> <value>    Set a configuration value
  pensieve config get <key>            Get a configuration value
  pensieve config list                 List all configuration values

Examples:
  pensieve config set memory.path ~/notes/memories.json
  pensieve config set api.listen :9000
  pensieve config get search.api_key
  pensieve config list`

const configShortDesc string = "Manage persistent pensieve configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
