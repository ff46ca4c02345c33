package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/xmlens/internal/cli/config"
)

// debounceDelay coalesces the event bursts editors and exporters produce
// when rewriting a capture file.
const debounceDelay = 250 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <capture-file>...",
		Short: "Re-analyze capture files whenever they change",
		Long: `Watch one or more capture files and re-run the analysis whenever a file
changes. Useful while a trace session is exporting statements to disk.`,
		Example: `  xmlens watch timings.txt`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}
}

func runWatch(cmd *cobra.Command, paths []string) error {
	logger := config.GetLogger(cmd.Context())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories: exporters replace files with rename+create,
	// which drops a watch placed on the file itself.
	watched := make(map[string]struct{})
	for _, path := range paths {
		dir := filepath.Dir(path)
		if _, ok := watched[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched[dir] = struct{}{}
	}

	targets := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		targets[filepath.Clean(path)] = struct{}{}
	}

	// Initial report before the first change.
	if err := runAnalyze(cmd, paths); err != nil {
		logger.Warn("initial analysis failed", "error", err)
	}

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rerun:
			fmt.Fprintln(cmd.OutOrStdout())
			if err := runAnalyze(cmd, paths); err != nil {
				logger.Warn("analysis failed", "error", err)
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, isTarget := targets[filepath.Clean(event.Name)]; !isTarget {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("capture changed", "file", event.Name, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
