package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hashtrend/internal/aggregate"
	"hashtrend/internal/series"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newExportCmd writes the aligned series instead of a chart.
func newExportCmd() *cobra.Command {
	var (
		inputPaths  []string
		inputFolder string
		hashtags    []string
		format      string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "export --hashtags TAG... (--input_paths FILE... | --input_folder DIR)",
		Short: "Write the per-hashtag series as JSON, YAML or CSV",
		Long: `Runs the same aggregation as plot/folder and writes the date axis and one
zero-filled series per hashtag. The report tables are not printed when the
export goes to stdout.

Example:
  trend export --hashtags '#flu' --input_folder outputs --format csv --out flu.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			f, err := series.ParseFormat(format)
			if err != nil {
				return err
			}
			if inputFolder == "" && len(inputPaths)+len(args) == 0 {
				return errors.New("one of --input_paths or --input_folder is required")
			}
			if outPath == "-" {
				quiet = true
			}

			tags := aggregate.Dedupe(hashtags)
			src, err := resolveSource(append(inputPaths, args...), inputFolder)
			if err != nil {
				return err
			}
			res, err := runPipeline(ctx, cmd.OutOrStdout(), src, tags)
			if err != nil {
				return err
			}

			if outPath == "-" {
				if err := series.Encode(cmd.OutOrStdout(), res.Series, f); err != nil {
					return err
				}
			} else if err := writeExport(outPath, res.Series, f); err != nil {
				return err
			}
			logger.Info("Series exported",
				zap.String("format", string(f)),
				zap.String("out", outPath),
				zap.Int("dates", len(res.Series.Axis)))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&inputPaths, "input_paths", nil, "Snapshot files to process")
	cmd.Flags().StringVar(&inputFolder, "input_folder", "", "Folder of snapshot files")
	cmd.Flags().StringArrayVar(&hashtags, "hashtags", nil, "Hashtags to export (required)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, yaml or csv")
	cmd.Flags().StringVar(&outPath, "out", "-", "Output file, - for stdout")
	_ = cmd.MarkFlagRequired("hashtags")
	cmd.MarkFlagsMutuallyExclusive("input_paths", "input_folder")

	return cmd
}

// writeExport encodes t into the file at path. The close error is returned
// so a failed flush is not reported as success.
func writeExport(path string, t *series.Table, f series.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := series.Encode(file, t, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
