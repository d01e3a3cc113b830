// Package cli provides the command-line interface for gridsweep.
package cli

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/raphaelgruber/gridsweep/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and logger
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gridsweep",
	Short: "Space Engineers save file cleaner",
	Long: `Gridsweep audits a Space Engineers dedicated server save, classifies
every cube grid, and selects abandoned ones for deletion: trash, grids with
default names and no custom beacon, respawn ships, and grids whose owners
are inactive, have no powered medical room, or own nothing but a respawn
ship.

The selection is written to CSV files for review. After confirmation, a
patched copy of the snapshot is written with the selected grids excised
byte-exactly and nonessential blocks switched off. The input files are
never modified.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)

		// Short run id so log lines from separate runs stay apart.
		logger = logger.With("run", uuid.New().String()[:8])

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(playersCmd)
}
