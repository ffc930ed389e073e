package eval

import "github.com/danielpatrickdp/wcst/go-controller/internal/rule"

// #region eval-config
// EvalConfig holds the bounds a finished session must respect.
type EvalConfig struct {
	MaxTrials     int // fail if more trials were recorded
	MaxCategories int // fail if more categories were credited
}

// DefaultEvalConfig returns the bounds of the standard scored task.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		MaxTrials:     rule.MaxTrials,
		MaxCategories: rule.MaxCategories,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string
	Value int
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of pre-archive validation.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
