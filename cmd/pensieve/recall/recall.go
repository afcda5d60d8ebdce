// Package recallcmder provides the recall command for searching stored facts.
package recallcmder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pensieveco/pensieve/pkg/cliui"
	"github.com/pensieveco/pensieve/pkg/config"
	"github.com/pensieveco/pensieve/pkg/factstore"
	"github.com/pensieveco/pensieve/pkg/logger"
	"github.com/pensieveco/pensieve/pkg/recall"
)

const recallLongDesc string = `Search stored facts by keyword.

Keywords are matched case-insensitively against whole words in both fact
keys and values. Multiple arguments are joined into one query.

Examples:
  pensieve recall color
  pensieve recall favorite color
  pensieve recall --json color`

const recallShortDesc string = "Search stored facts"

type RecallCommander struct {
	memoryPath string
	jsonOut    bool
	debug      bool
	configDir  string
}

func NewRecallCmd() *cobra.Command {
	cmder := &RecallCommander{}

	cmd := &cobra.Command{
		Use:   "recall <query>",
		Short: recallShortDesc,
		Long:  recallLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagMemoryPath})
			cmder.memoryPath = v.GetString("memory.path")

			return cmder.run(cmd, strings.Join(args, " "))
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryPath, &cmder.memoryPath)
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Print the structured recall outcome as JSON")

	return cmd
}

func (c *RecallCommander) run(cmd *cobra.Command, query string) error {
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

	engine, err := recall.NewEngine(recall.Config{
		Store:  store,
		Logger: zapLogger,
	})
	if err != nil {
		return fmt.Errorf("creating recall engine: %w", err)
	}

	result := engine.Recall(cmd.Context(), query)

	if c.jsonOut {
		return printJSON(result)
	}

	printPretty(result)
	return nil
}

func printJSON(result recall.Result) error {
	out := struct {
		recall.Result
		Message string `json:"message"`
	}{result, result.Message()}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

func printPretty(result recall.Result) {
	switch result.Kind {
	case recall.KindMatches:
		fmt.Print(renderMatches(result))

	case recall.KindCorrupt, recall.KindStorageError:
		fmt.Printf("\n  %s %s\n\n", cliui.FailMark, result.Message())

	default:
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render(result.Message()))
	}
}

// renderMatches renders the matches as a markdown list via glamour, falling
// back to the plain tool-boundary message if rendering fails.
func renderMatches(result recall.Result) string {
	var md strings.Builder
	fmt.Fprintf(&md, "Here are the memories I found related to '%s':\n\n", result.Query)
	for _, f := range result.Matches {
		fmt.Fprintf(&md, "- **%s**: %s\n", f.Key, f.Value)
	}

	rendered, err := cliui.RenderMarkdown(md.String())
	if err != nil {
		return result.Message() + "\n"
	}

	return rendered
}
