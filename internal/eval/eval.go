package eval

import (
	"fmt"

	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

// #region eval-harness
// EvalHarness checks a recorded session for internal consistency before it
// is archived.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run validates entries against the summary that will be stored with them.
func (h *EvalHarness) Run(entries []triallog.Entry, summary triallog.Summary) EvalResult {
	var metrics []EvalMetric
	var failReasons []string

	check := func(name string, value int, pass bool, format string, args ...interface{}) {
		metrics = append(metrics, EvalMetric{Name: name, Value: value, Pass: pass})
		if !pass {
			failReasons = append(failReasons, fmt.Sprintf(format, args...))
		}
	}

	trials, markers, gaps := 0, 0, 0
	for _, e := range entries {
		if e.IsMarker() {
			markers++
			continue
		}
		trials++
		if e.Trial.Index != trials {
			gaps++
		}
	}

	// 1. Bounds of the task
	check("trial_count", trials, trials <= h.config.MaxTrials,
		"%d trials exceeds %d", trials, h.config.MaxTrials)
	check("categories", summary.CategoriesCompleted, summary.CategoriesCompleted <= h.config.MaxCategories,
		"%d categories exceeds %d", summary.CategoriesCompleted, h.config.MaxCategories)

	// 2. Log shape
	check("index_gaps", gaps, gaps == 0, "%d trials out of sequence", gaps)
	// the last category ends the schedule without a marker
	wantMarkers := summary.CategoriesCompleted
	if wantMarkers == h.config.MaxCategories {
		wantMarkers--
	}
	check("markers", markers, markers == wantMarkers,
		"%d rule changes for %d categories", markers, summary.CategoriesCompleted)

	// 3. Summary agrees with the log
	recomputed := triallog.Summarize(entries, summary.CategoriesCompleted)
	check("summary_total", summary.TotalTrials, recomputed.TotalTrials == summary.TotalTrials,
		"summary reports %d trials, log has %d", summary.TotalTrials, recomputed.TotalTrials)
	check("summary_correct", summary.Correct, recomputed.Correct == summary.Correct,
		"summary reports %d correct, log has %d", summary.Correct, recomputed.Correct)
	check("summary_pe", summary.PerseverativeErrors, recomputed.PerseverativeErrors == summary.PerseverativeErrors,
		"summary reports %d perseverative errors, log has %d", summary.PerseverativeErrors, recomputed.PerseverativeErrors)
	check("summary_pr", summary.PerseverativeResponses, recomputed.PerseverativeResponses == summary.PerseverativeResponses,
		"summary reports %d perseverative responses, log has %d", summary.PerseverativeResponses, recomputed.PerseverativeResponses)

	passed := len(failReasons) == 0
	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness
