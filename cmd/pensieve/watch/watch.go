// Package watchcmder provides the watch command for following external
// changes to the fact base.
package watchcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pensieveco/pensieve/pkg/cliui"
	"github.com/pensieveco/pensieve/pkg/config"
	"github.com/pensieveco/pensieve/pkg/factstore"
)

var (
	addMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("+")
	changeMark = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("~")
	removeMark = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("-")
)

const watchLongDesc string = `Watch the fact base for changes.

Follows the memories.json document and reports every fact that is added,
changed, or removed by other writers: a running pensieve server, another
pensieve command, or a hand edit. Runs until interrupted.

Examples:
  pensieve watch
  pensieve watch --memory-path ~/notes/memories.json`

const watchShortDesc string = "Watch the fact base for changes"

type WatchCommander struct {
	memoryPath string
	debug      bool
	configDir  string
}

func NewWatchCmd() *cobra.Command {
	cmder := &WatchCommander{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: watchShortDesc,
		Long:  watchLongDesc,
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

			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryPath, &cmder.memoryPath)

	return cmd
}

func (c *WatchCommander) run(cmd *cobra.Command) error {
	path, err := factstore.ResolvePath(c.memoryPath)
	if err != nil {
		return fmt.Errorf("resolving fact base path: %w", err)
	}

	store, err := factstore.NewStore(factstore.Config{Path: path})
	if err != nil {
		return fmt.Errorf("creating fact store: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = followFacts(ctx, store, cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// followFacts watches the fact base document and reports fact-level diffs on
// every rewrite until the context is canceled. The parent directory is
// watched rather than the file itself: the store replaces the file by rename,
// which would silently detach a watch on the old inode.
func followFacts(ctx context.Context, store *factstore.Store, out io.Writer) error {
	path := store.Path()

	// The directory must exist before it can be watched. Creating it mirrors
	// what the first write would do anyway.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating fact base directory %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fact base watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching fact base directory: %w", err)
	}

	snapshot := loadSnapshot(out, store, nil)

	fmt.Fprintf(out, "\n  %s %s\n", cliui.KeyStyle.Render("Watching:"), cliui.DimStyle.Render(path))
	fmt.Fprintf(out, "  %s %s\n\n",
		cliui.KeyStyle.Render("Facts:   "),
		cliui.ValueStyle.Render(strconv.Itoa(len(snapshot))),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			next := loadSnapshot(out, store, snapshot)
			reportDiff(out, snapshot, next)
			snapshot = next

		case err := <-watcher.Errors:
			return fmt.Errorf("fact base watcher error: %w", err)
		}
	}
}

// loadSnapshot reads the current fact base for diffing. A missing file is an
// empty snapshot. A corrupt or unreadable one is reported and the previous
// snapshot is kept, so the diff printed after the document is repaired spans
// back to the last readable state.
func loadSnapshot(out io.Writer, store *factstore.Store, prev []factstore.Fact) []factstore.Fact {
	fb, err := store.Load()
	if err != nil {
		switch {
		case errors.Is(err, factstore.ErrNoStore):
			return nil

		default:
			var corrupt *factstore.CorruptError
			if errors.As(err, &corrupt) {
				fmt.Fprintf(out, "  %s %s\n", cliui.FailMark,
					cliui.DimStyle.Render("fact base is unreadable: "+err.Error()))
			} else {
				fmt.Fprintf(out, "  %s %s\n", cliui.FailMark,
					cliui.DimStyle.Render("reading fact base: "+err.Error()))
			}
			return prev
		}
	}

	return fb.Facts()
}

// reportDiff prints one line per added, changed, or removed fact. Added and
// changed facts follow the new document's order, removed keys the old one's.
func reportDiff(out io.Writer, old, next []factstore.Fact) {
	added, changed, removed := diffFacts(old, next)

	for _, f := range added {
		fmt.Fprintf(out, "  %s %s: %s\n", addMark, cliui.KeyStyle.Render(f.Key), cliui.ValueStyle.Render(f.Value))
	}
	for _, f := range changed {
		fmt.Fprintf(out, "  %s %s: %s\n", changeMark, cliui.KeyStyle.Render(f.Key), cliui.ValueStyle.Render(f.Value))
	}
	for _, key := range removed {
		fmt.Fprintf(out, "  %s %s\n", removeMark, cliui.KeyStyle.Render(key))
	}
}

// diffFacts computes the fact-level difference between two snapshots.
func diffFacts(old, next []factstore.Fact) (added, changed []factstore.Fact, removed []string) {
	oldValues := make(map[string]string, len(old))
	for _, f := range old {
		oldValues[f.Key] = f.Value
	}

	nextKeys := make(map[string]struct{}, len(next))
	for _, f := range next {
		nextKeys[f.Key] = struct{}{}

		prev, existed := oldValues[f.Key]
		switch {
		case !existed:
			added = append(added, f)
		case prev != f.Value:
			changed = append(changed, f)
		}
	}

	for _, f := range old {
		if _, ok := nextKeys[f.Key]; !ok {
			removed = append(removed, f.Key)
		}
	}

	return added, changed, removed
}
