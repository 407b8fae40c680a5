package main

import (
	"context"
	"os/signal"
	"syscall"

	"hashtrend/internal/aggregate"
	"hashtrend/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// newWatchCmd keeps a folder chart up to date as snapshots arrive.
func newWatchCmd() *cobra.Command {
	var (
		hashtags    []string
		inputFolder string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "watch --hashtags TAG... --input_folder DIR",
		Short: "Re-render the folder chart whenever its snapshots change",
		Long: `Runs the folder pipeline once, then again after every settled burst of
changes to files with the configured suffix. Each run starts from scratch.
Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tags := aggregate.Dedupe(append(hashtags, args...))
			if outputPath == "" {
				outputPath = cfg.Plot.FolderOutput
			}
			out := cmd.OutOrStdout()

			rerun := func(ctx context.Context) error {
				src, err := resolveSource(nil, inputFolder)
				if err != nil {
					return err
				}
				res, err := runPipeline(ctx, out, src, tags)
				if err != nil {
					return err
				}
				return renderResult(out, res, outputPath)
			}

			w, err := watch.New(inputFolder, cfg.Input.FolderSuffix, cfg.GetDebounce(), rerun)
			if err != nil {
				return err
			}
			logger.Info("Watch started",
				zap.String("folder", inputFolder),
				zap.Strings("hashtags", tags),
				zap.Duration("debounce", cfg.GetDebounce()))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return w.Run(gctx)
			})
			if err := g.Wait(); err != nil {
				return err
			}

			stats := w.Stats()
			logger.Info("Watch finished", zap.Int("runs", stats.Runs), zap.Int("errors", stats.Errors))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&hashtags, "hashtags", nil, "Hashtags to chart (required)")
	cmd.Flags().StringVar(&inputFolder, "input_folder", "", "Folder of snapshot files (required)")
	cmd.Flags().StringVar(&outputPath, "output_path", "", "Chart file (default from config, trend_plot.png)")
	_ = cmd.MarkFlagRequired("hashtags")
	_ = cmd.MarkFlagRequired("input_folder")

	return cmd
}
