// Package pipeline runs one extraction -> aggregation -> export pass over a
// list of snapshot files.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hashtrend/internal/aggregate"
	"hashtrend/internal/datekey"
	"hashtrend/internal/discovery"
	"hashtrend/internal/logging"
	"hashtrend/internal/series"
	"hashtrend/internal/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SkipReason classifies why an input did not contribute to the table.
type SkipReason string

const (
	SkipPatternMismatch SkipReason = "pattern_mismatch"
	SkipFileAccess      SkipReason = "file_access"
	SkipParse           SkipReason = "parse"
)

// Skip records one input that was left out of the run.
type Skip struct {
	Path   string
	Reason SkipReason
	Err    error
}

// Request describes one run.
type Request struct {
	Source   discovery.Source
	Hashtags []string
	Policy   EmptyPolicy
}

// Result is everything a run produced.
type Result struct {
	RunID     string
	Aggregate *aggregate.Table
	Series    *series.Table
	Ingested  int
	Skipped   []Skip
	Status    Status
	Duration  time.Duration
}

// Run processes every path in order, one at a time.
// Per-file failures are recorded in Result.Skipped and never abort the run.
func Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.Hashtags) == 0 {
		return nil, errors.New("at least one hashtag is required")
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := logging.Get(logging.CategoryAggregate).With(zap.String("run_id", res.RunID))
	extractor := datekey.NewExtractor(req.Source.Strategy)
	agg := aggregate.New(req.Hashtags)
	log.Info("Starting run",
		zap.Int("inputs", len(req.Source.Paths)),
		zap.Strings("hashtags", agg.Hashtags()),
		zap.Stringer("date_pattern", extractor.Strategy()))

	for _, path := range req.Source.Paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted: %w", err)
		}
		skip, err := ingestOne(extractor, agg, path, res.RunID)
		if err != nil {
			return nil, err
		}
		if skip != nil {
			res.Skipped = append(res.Skipped, *skip)
			continue
		}
		res.Ingested++
	}

	res.Aggregate = agg.Table()
	axis, err := series.BuildAxis(res.Aggregate)
	if err != nil {
		return nil, err
	}
	res.Series = series.Export(res.Aggregate, axis, agg.Hashtags())

	logging.Get(logging.CategoryExport).Debug("Series exported",
		zap.String("run_id", res.RunID),
		zap.Int("dates", len(axis)),
		zap.Int("hashtags", len(res.Series.Hashtags)))

	var unseen []string
	for _, tag := range res.Series.Hashtags {
		if !res.Aggregate.Observed(tag) {
			unseen = append(unseen, tag)
		}
	}
	if len(unseen) > 0 {
		log.Info("Hashtags not found in any snapshot", zap.Strings("hashtags", unseen))
	}

	res.Duration = time.Since(start)
	status, err := req.Policy.apply(res)
	res.Status = status
	log.Info("Run finished",
		zap.Int("ingested", res.Ingested),
		zap.Int("skipped", len(res.Skipped)),
		zap.String("status", string(status)),
		zap.Duration("duration", res.Duration))
	return res, err
}

func ingestOne(ex *datekey.Extractor, agg *aggregate.Aggregator, path, runID string) (*Skip, error) {
	date, err := ex.Extract(path)
	if err != nil {
		if errors.Is(err, datekey.ErrNoMatch) {
			logging.Get(logging.CategoryExtract).Debug("Skipping file without date",
				zap.String("run_id", runID), zap.String("path", path), zap.Error(err))
			return &Skip{Path: path, Reason: SkipPatternMismatch, Err: err}, nil
		}
		return nil, err
	}

	rec, err := snapshot.Load(path)
	if err != nil {
		reason := SkipParse
		var fae *snapshot.FileAccessError
		if errors.As(err, &fae) {
			reason = SkipFileAccess
		}
		logging.Get(logging.CategoryLoad).Warn("Skipping unreadable snapshot",
			zap.String("run_id", runID),
			zap.String("path", path),
			zap.String("reason", string(reason)),
			zap.Error(err))
		return &Skip{Path: path, Reason: reason, Err: err}, nil
	}

	if err := agg.Ingest(date, rec); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", path, err)
	}
	logging.Get(logging.CategoryLoad).Debug("Ingested snapshot",
		zap.String("run_id", runID),
		zap.String("path", path),
		zap.String("date", date.Text))
	return nil, nil
}
