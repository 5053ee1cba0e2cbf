package cli

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	configfile "github.com/mincehq/mince/internal/adapters/driven/config/file"
)

// watchDebounce batches rapid build-tool writes into one pass.
const watchDebounce = 200 * time.Millisecond

var watchOut string

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-minify build output on change",
	Long: `Watches a build output directory and runs an optimisation pass
whenever files change. The output directory must lie outside the
watched directory, otherwise the tool would react to its own writes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output directory (required)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if watchOut == "" {
		return errors.New("watch requires --out pointing outside the watched directory")
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	absOut, err := filepath.Abs(watchOut)
	if err != nil {
		return err
	}
	if rel, err := filepath.Rel(absDir, absOut); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.New("watch requires --out pointing outside the watched directory")
	}

	opts, err := configfile.Load(resolveConfigPath(dir))
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, dir); err != nil {
		return err
	}

	ctx := cmd.Context()
	pass := func() {
		logger := log.With().Str("run_id", uuid.NewString()).Logger()
		comp, err := executePass(ctx, logger, dir, watchOut, opts)
		if err != nil {
			logger.Error().Err(err).Msg("pass failed")
			return
		}
		for _, w := range comp.Warnings {
			logger.Warn().Msg(w.Error())
		}
		for _, e := range comp.Errors {
			logger.Error().Msg(e.Error())
		}
		logger.Info().Int("errors", len(comp.Errors)).Msg("pass complete")
	}

	cmd.Printf("Watching %s...\n", dir)
	pass()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				pending = time.After(watchDebounce)
			}
			if event.Op&fsnotify.Create != 0 {
				// New subdirectories need their own watches.
				_ = addRecursive(watcher, event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		case <-pending:
			pending = nil
			pass()
		}
	}
}

// addRecursive watches path and every directory beneath it. Non-directory
// paths are ignored.
func addRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // races with deletions are expected while watching
		}
		if entry.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
