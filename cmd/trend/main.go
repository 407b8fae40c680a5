package main

import (
	"fmt"
	"os"

	"hashtrend/internal/config"
	"hashtrend/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	configPath  string
	datePattern string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// newRootCmd builds the command tree. Each call rebinds the global flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trend",
		Short: "hashtrend - daily hashtag trend charts from snapshot files",
		Long: `hashtrend reads daily hashtag count snapshots, one file per day, keyed by
hashtag then by sub-term, and turns them into one aligned time series per
hashtag.

Days on which a hashtag does not appear are plotted as zero. When two files
resolve to the same day the one processed last wins.

Two ways to select inputs:
  trend plot   --input_paths FILE... --hashtags TAG...   (MM-DD-YY in filenames)
  trend folder --input_folder DIR --hashtags TAG...      (geoTwitterYY-MM-DD filenames)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("invalid config %s: %w", configPath, err)
			}
			cfg = loaded

			logger, err = logging.Initialize(cfg.Logging, verbose)
			if err != nil {
				return err
			}
			logging.Get(logging.CategoryBoot).Debug("Configuration loaded",
				zap.String("config", configPath),
				zap.String("empty_policy", cfg.EmptyPolicy),
				zap.String("folder_suffix", cfg.Input.FolderSuffix))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the data report tables")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&datePattern, "date_pattern", "", "Override filename date pattern: generic or geotwitter")

	rootCmd.AddCommand(newPlotCmd())
	rootCmd.AddCommand(newFolderCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

func main() {
	root := newRootCmd()
	root.SetArgs(expandListFlags(os.Args[1:]))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
