// Package cli is the driving adapter exposing mince as a command-line tool.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mincehq/mince/internal/logging"
)

var (
	configPath string
	verbose    bool
	log        zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mince",
	Short: "Post-build JavaScript asset minification",
	Long: `mince plugs into the tail of a build: it selects output files,
minifies them through an embedded engine, extracts license comments
into sidecar files and maps engine diagnostics back to original
source locations via source maps.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		log = logging.New(cmd.ErrOrStderr(), verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to mince.toml (default: <dir>/mince.toml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
