package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	configfile "github.com/mincehq/mince/internal/adapters/driven/config/file"
	"github.com/mincehq/mince/internal/core/domain"
	"github.com/mincehq/mince/internal/engines/esbuild"
	"github.com/mincehq/mince/internal/pipeline"
)

var runOut string

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Minify build output once",
	Long: `Runs one optimisation pass over a build output directory.
Every file matching the selection predicate is minified; extracted
license comments land in sidecar files next to the transformed assets.
Without --out, files are rewritten in place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "output directory (default: in place)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	out := runOut
	if out == "" {
		out = dir
	}

	opts, err := configfile.Load(resolveConfigPath(dir))
	if err != nil {
		return err
	}

	logger := log.With().Str("run_id", uuid.NewString()).Logger()

	comp, err := executePass(cmd.Context(), logger, dir, out, opts)
	if err != nil {
		return err
	}

	for _, w := range comp.Warnings {
		logger.Warn().Msg(w.Error())
	}
	for _, e := range comp.Errors {
		logger.Error().Msg(e.Error())
	}

	if n := len(comp.Errors); n > 0 {
		return fmt.Errorf("minification failed for %d file(s)", n)
	}

	cmd.Printf("Minified %s into %s.\n", dir, out)
	return nil
}

// resolveConfigPath prefers the --config flag, then <dir>/mince.toml when
// it exists, then the built-in defaults.
func resolveConfigPath(dir string) string {
	if configPath != "" {
		return configPath
	}
	candidate := filepath.Join(dir, "mince.toml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// executePass builds a compilation from dir, runs one pipeline pass over
// it and writes the results to out. It is shared by run and watch.
func executePass(ctx context.Context, logger zerolog.Logger, dir, out string, opts pipeline.Options) (*domain.Compilation, error) {
	p, err := pipeline.New(opts, esbuild.New(), logger)
	if err != nil {
		return nil, err
	}

	comp, candidates, err := buildCompilation(dir, opts.SourceMap)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("assets", len(candidates)).Str("dir", dir).Msg("compilation built")

	p.Run(ctx, comp, candidates)

	propagateSourceMaps(comp)

	if err := writeCompilation(comp, out); err != nil {
		return nil, err
	}
	return comp, nil
}

// buildCompilation reads every regular file under dir into an asset.
// When source maps are enabled, a sibling <name>.map file is attached to
// its asset so diagnostics can be mapped back to original sources.
// Candidate order is the sorted asset name order.
func buildCompilation(dir string, sourceMap bool) (*domain.Compilation, []string, error) {
	comp := domain.NewCompilation()

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		comp.AddAsset(&domain.Asset{Name: filepath.ToSlash(rel), Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("read build output: %w", err)
	}

	if sourceMap {
		for name, asset := range comp.Assets {
			if mapAsset := comp.Asset(name + ".map"); mapAsset != nil {
				asset.SourceMap = []byte(mapAsset.Content)
			}
		}
	}

	return comp, comp.AssetNames(), nil
}

// propagateSourceMaps pushes regenerated maps back into their sibling
// .map assets, creating the sibling when the engine produced a map for an
// asset that had none.
func propagateSourceMaps(comp *domain.Compilation) {
	var created []*domain.Asset

	for name, asset := range comp.Assets {
		if len(asset.SourceMap) == 0 || strings.HasSuffix(name, ".map") {
			continue
		}
		if mapAsset := comp.Asset(name + ".map"); mapAsset != nil {
			mapAsset.Content = string(asset.SourceMap)
		} else {
			created = append(created, &domain.Asset{Name: name + ".map", Content: string(asset.SourceMap)})
		}
	}

	sort.Slice(created, func(i, j int) bool { return created[i].Name < created[j].Name })
	for _, a := range created {
		comp.AddAsset(a)
	}
}

// writeCompilation persists every asset under out, creating directories
// as needed.
func writeCompilation(comp *domain.Compilation, out string) error {
	for _, name := range comp.AssetNames() {
		path := filepath.Join(out, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte(comp.Asset(name).Content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
