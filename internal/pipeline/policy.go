package pipeline

import (
	"errors"
	"fmt"

	"hashtrend/internal/logging"

	"go.uber.org/zap"
)

// ErrNoData is returned under PolicyError when a run has nothing to show.
var ErrNoData = errors.New("no data for the requested hashtags")

// EmptyPolicy decides how a run with nothing to show is reported.
// It applies the same way no matter how inputs were discovered.
type EmptyPolicy string

const (
	// PolicyWarn skips rendering with a notice.
	PolicyWarn EmptyPolicy = "warn"
	// PolicyError fails the run.
	PolicyError EmptyPolicy = "error"
	// PolicySilent skips rendering quietly.
	PolicySilent EmptyPolicy = "silent"
)

// ParseEmptyPolicy validates a policy name. Empty means PolicyWarn.
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch p := EmptyPolicy(s); p {
	case "":
		return PolicyWarn, nil
	case PolicyWarn, PolicyError, PolicySilent:
		return p, nil
	default:
		return "", fmt.Errorf("invalid empty policy %q (valid: warn, error, silent)", s)
	}
}

// Status summarizes what a run produced.
type Status string

const (
	// StatusOK means the date axis has at least one date.
	StatusOK Status = "ok"
	// StatusNoDates means no input produced a date.
	StatusNoDates Status = "no_dates"
	// StatusNoHashtags means inputs were dated but none held a requested hashtag.
	StatusNoHashtags Status = "no_hashtags"
)

// Renderable reports whether the result should be handed to the renderer.
func (r *Result) Renderable() bool {
	return r.Status == StatusOK
}

// Notify reports whether the caller should print a user-visible notice.
func (p EmptyPolicy) Notify(s Status) bool {
	return s != StatusOK && p != PolicySilent
}

func (p EmptyPolicy) apply(res *Result) (Status, error) {
	status := classify(res)
	if status == StatusOK {
		return status, nil
	}
	if p == PolicyError {
		return status, fmt.Errorf("%w (%s)", ErrNoData, status)
	}
	if p != PolicySilent {
		logging.Get(logging.CategoryExport).Warn("Run produced no data",
			zap.String("run_id", res.RunID),
			zap.String("status", string(status)),
			zap.Int("ingested", res.Ingested))
	}
	return status, nil
}

// classify tells an empty axis caused by undated inputs apart from one where
// dated inputs held none of the requested hashtags.
func classify(res *Result) Status {
	switch {
	case !res.Series.Empty():
		return StatusOK
	case res.Ingested == 0:
		return StatusNoDates
	default:
		return StatusNoHashtags
	}
}
