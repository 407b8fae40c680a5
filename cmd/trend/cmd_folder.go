package main

import (
	"os/signal"
	"syscall"

	"hashtrend/internal/aggregate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newFolderCmd charts every snapshot in a folder.
func newFolderCmd() *cobra.Command {
	var (
		hashtags    []string
		inputFolder string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "folder --hashtags TAG... --input_folder DIR",
		Short: "Chart hashtags across every snapshot in a folder",
		Long: `Scans DIR (not recursively) for files ending in the configured suffix
(default .lang), in name order, dating each by its geoTwitterYY-MM-DD prefix.

Extra positional arguments are treated as more hashtags.

Example:
  trend folder --hashtags '#coronavirus' '#flu' --input_folder outputs --output_path covid.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tags := aggregate.Dedupe(append(hashtags, args...))
			if outputPath == "" {
				outputPath = cfg.Plot.FolderOutput
			}
			logger.Info("Plotting folder",
				zap.String("folder", inputFolder),
				zap.Strings("hashtags", tags),
				zap.String("output", outputPath))

			src, err := resolveSource(nil, inputFolder)
			if err != nil {
				return err
			}
			res, err := runPipeline(ctx, cmd.OutOrStdout(), src, tags)
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), res, outputPath)
		},
	}

	cmd.Flags().StringArrayVar(&hashtags, "hashtags", nil, "Hashtags to chart (required)")
	cmd.Flags().StringVar(&inputFolder, "input_folder", "", "Folder of snapshot files (required)")
	cmd.Flags().StringVar(&outputPath, "output_path", "", "Chart file (default from config, trend_plot.png)")
	_ = cmd.MarkFlagRequired("hashtags")
	_ = cmd.MarkFlagRequired("input_folder")

	return cmd
}
