// Package factscmder provides the facts command for listing the whole fact
// base.
package factscmder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pensieveco/pensieve/pkg/cliui"
	"github.com/pensieveco/pensieve/pkg/config"
	"github.com/pensieveco/pensieve/pkg/factstore"
	"github.com/pensieveco/pensieve/pkg/logger"
)

const factsLongDesc string = `List everything pensieve knows.

Shows every stored fact in the order it was first remembered. Use --json to
print the raw fact base document instead, exactly as it is stored on disk.

Examples:
  pensieve facts
  pensieve facts --json`

const factsShortDesc string = "List stored facts"

type FactsCommander struct {
	memoryPath string
	jsonOut    bool
	debug      bool
	configDir  string
}

func NewFactsCmd() *cobra.Command {
	cmder := &FactsCommander{}

	cmd := &cobra.Command{
		Use:   "facts",
		Short: factsShortDesc,
		Long:  factsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagMemoryPath})
			cmder.memoryPath = v.GetString("memory.path")

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryPath, &cmder.memoryPath)
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Print the raw fact base document as JSON")

	return cmd
}

func (c *FactsCommander) run() error {
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

	fb, err := store.Load()
	if err != nil {
		if errors.Is(err, factstore.ErrNoStore) {
			return c.printEmpty(path)
		}

		var corrupt *factstore.CorruptError
		if errors.As(err, &corrupt) {
			return fmt.Errorf("fact base is corrupted: %w", err)
		}

		return fmt.Errorf("loading fact base: %w", err)
	}

	if c.jsonOut {
		return printDocument(fb)
	}

	printFacts(path, fb)
	return nil
}

// printEmpty reports an absent fact base. Not an error: nothing has been
// remembered yet.
func (c *FactsCommander) printEmpty(path string) error {
	if c.jsonOut {
		fmt.Println("{}")
		return nil
	}

	fmt.Printf("\n  %s\n  %s\n\n",
		cliui.DimStyle.Render("No facts stored yet."),
		cliui.DimStyle.Render("Store one with: pensieve remember <key> <value>"),
	)
	fmt.Printf("  %s %s\n\n",
		cliui.KeyStyle.Render("Fact base:"),
		cliui.DimStyle.Render(path),
	)

	return nil
}

func printDocument(fb *factstore.FactBase) error {
	data, err := json.MarshalIndent(fb, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding fact base: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

func printFacts(path string, fb *factstore.FactBase) {
	facts := fb.Facts()

	fmt.Printf("\n  %s %s\n", cliui.KeyStyle.Render("Fact base:"), cliui.DimStyle.Render(path))
	fmt.Printf("  %s %s\n\n", cliui.KeyStyle.Render("Facts:    "), cliui.ValueStyle.Render(strconv.Itoa(len(facts))))

	// Find the longest key for alignment.
	maxLen := 0
	for _, f := range facts {
		if len(f.Key) > maxLen {
			maxLen = len(f.Key)
		}
	}

	for _, f := range facts {
		// Pad before styling so ANSI codes do not skew the column width.
		fmt.Printf("  %s  %s\n",
			cliui.KeyStyle.Render(fmt.Sprintf("%-*s", maxLen, f.Key)),
			cliui.ValueStyle.Render(f.Value),
		)
	}

	fmt.Println()
}
