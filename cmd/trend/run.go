package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"hashtrend/internal/datekey"
	"hashtrend/internal/discovery"
	"hashtrend/internal/logging"
	"hashtrend/internal/pipeline"
	"hashtrend/internal/render"
	"hashtrend/internal/report"

	"go.uber.org/zap"
)

// resolveSource picks the discovery path and its date strategy. A folder wins
// over explicit paths; --date_pattern, then the config file, override the
// strategy the discovery path implies.
func resolveSource(paths []string, folder string) (discovery.Source, error) {
	var src discovery.Source
	if folder != "" {
		s, err := discovery.Folder(folder, cfg.Input.FolderSuffix)
		if err != nil {
			return discovery.Source{}, err
		}
		src = s
	} else {
		if len(paths) == 0 {
			return discovery.Source{}, errors.New("no input files given")
		}
		src = discovery.Paths(paths)
	}

	pattern := datePattern
	if pattern == "" {
		pattern = cfg.Input.DatePattern
	}
	if pattern != "" {
		strategy, err := datekey.ParseStrategy(pattern)
		if err != nil {
			return discovery.Source{}, err
		}
		src = src.WithStrategy(strategy)
	}

	logging.Get(logging.CategoryDiscovery).Info("Inputs resolved",
		zap.Int("files", len(src.Paths)),
		zap.String("folder", folder),
		zap.Stringer("date_pattern", src.Strategy))
	return src, nil
}

// runPipeline executes one run and prints the report tables unless quieted.
func runPipeline(ctx context.Context, out io.Writer, src discovery.Source, hashtags []string) (*pipeline.Result, error) {
	policy, err := pipeline.ParseEmptyPolicy(cfg.EmptyPolicy)
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Run(ctx, pipeline.Request{
		Source:   src,
		Hashtags: hashtags,
		Policy:   policy,
	})
	if res != nil && cfg.Report.Enabled && !quiet {
		report.New(out, cfg.Report.Locale).Run(res)
	}
	return res, err
}

// renderResult writes the chart, or explains why there is none.
func renderResult(out io.Writer, res *pipeline.Result, outputPath string) error {
	policy, err := pipeline.ParseEmptyPolicy(cfg.EmptyPolicy)
	if err != nil {
		return err
	}
	if !res.Renderable() {
		if policy.Notify(res.Status) {
			report.New(out, cfg.Report.Locale).Notice("No data found for the given hashtags; no plot written.")
		}
		return nil
	}

	if err := render.SavePNG(outputPath, res.Series, render.OptionsFromConfig(cfg.Plot)); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	fmt.Fprintf(out, "Plot saved as %s\n", outputPath)
	return nil
}
