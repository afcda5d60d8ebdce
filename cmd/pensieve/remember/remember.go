// Package remembercmder provides the remember command for storing facts
// from the command line.
package remembercmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pensieveco/pensieve/pkg/cliui"
	"github.com/pensieveco/pensieve/pkg/config"
	"github.com/pensieveco/pensieve/pkg/factstore"
	"github.com/pensieveco/pensieve/pkg/logger"
)

const rememberLongDesc string = `Store a fact in the pensieve memory.

Writes directly to the memories.json fact base. Keys are short snake_case
identifiers; storing an existing key overwrites its value.

Examples:
  pensieve remember favorite_color blue
  pensieve remember home_city "Oslo, Norway"`

const rememberShortDesc string = "Store a fact"

type RememberCommander struct {
	memoryPath string
	debug      bool
	configDir  string
}

func NewRememberCmd() *cobra.Command {
	cmder := &RememberCommander{}

	cmd := &cobra.Command{
		Use:   "remember <key> <value>",
		Short: rememberShortDesc,
		Long:  rememberLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagMemoryPath})
			cmder.memoryPath = v.GetString("memory.path")

			return cmder.run(args[0], args[1])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryPath, &cmder.memoryPath)

	return cmd
}

func (c *RememberCommander) run(key, value string) error {
	zapLogger := logger.Nop()
	if c.debug {
		zapLogger = logger.NewLogger(true)
	}
	defer func() { _ = zapLogger.Sync() }()

	path, err := factstore.ResolvePath(c.memoryPath)
	if err != nil {
		return fmt.Errorf("resolving fact base path: %w", err)
	}

	store, err := factstore.NewStore(factstore.Config{
		Path:   path,
		Logger: zapLogger,
	})
	if err != nil {
		return fmt.Errorf("creating fact store: %w", err)
	}

	if err := store.Upsert(key, value); err != nil {
		return fmt.Errorf("saving memory: %w", err)
	}

	fmt.Printf("\n  %s Okay, I've remembered that '%s' is '%s'\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(key),
		cliui.ValueStyle.Render(value),
	)

	return nil
}
