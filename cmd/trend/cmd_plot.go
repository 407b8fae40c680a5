package main

import (
	"os/signal"
	"path/filepath"
	"syscall"

	"hashtrend/internal/aggregate"
	"hashtrend/internal/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newPlotCmd charts an explicit list of snapshot files.
func newPlotCmd() *cobra.Command {
	var (
		inputPaths []string
		hashtags   []string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "plot --input_paths FILE... --hashtags TAG...",
		Short: "Chart hashtags across an explicit list of snapshot files",
		Long: `Reads each file in the order given, dating it by the first MM-DD-YY in its
name. The chart is written to hashtag_trend_<tags>.png, where <tags> are the
requested hashtags with everything but letters, digits and '_' removed.

Extra positional arguments are treated as more input paths, so a shell glob
after --input_paths works as expected.

Example:
  trend plot --hashtags '#coronavirus' '#flu' --input_paths outputs/*.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			paths := append(inputPaths, args...)
			tags := aggregate.Dedupe(hashtags)
			logger.Info("Plotting explicit inputs",
				zap.Int("files", len(paths)),
				zap.Strings("hashtags", tags))

			src, err := resolveSource(paths, "")
			if err != nil {
				return err
			}
			res, err := runPipeline(ctx, cmd.OutOrStdout(), src, tags)
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), res, filepath.Join(outputDir, render.OutputName(tags)))
		},
	}

	cmd.Flags().StringArrayVar(&inputPaths, "input_paths", nil, "Snapshot files to process (required)")
	cmd.Flags().StringArrayVar(&hashtags, "hashtags", nil, "Hashtags to chart (required)")
	cmd.Flags().StringVar(&outputDir, "output_dir", ".", "Directory for the generated chart")
	_ = cmd.MarkFlagRequired("input_paths")
	_ = cmd.MarkFlagRequired("hashtags")

	return cmd
}
