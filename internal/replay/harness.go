package replay

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/danielpatrickdp/wcst/go-controller/internal/engine"
	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

// #region types

// Result captures the outcome of replaying a fixture through a scored engine.
type Result struct {
	Outcomes   []engine.Outcome
	Entries    []triallog.Entry
	Summary    triallog.Summary
	Terminated bool
	// Unused counts responses left over after the session terminated.
	Unused int
}

// #endregion types

// #region replay

// Replay feeds every recorded response to a fresh scored engine over the
// fixture's stimulus order. Operates entirely in-memory.
func Replay(f *Fixture, logger *zap.Logger) (Result, error) {
	if len(f.Stimuli) < len(f.Responses) {
		return Result{}, fmt.Errorf("replay: %d responses but only %d stimuli", len(f.Responses), len(f.Stimuli))
	}
	deck, err := f.Deck()
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	e := engine.New(engine.Config{Deck: deck, Logger: logger})

	var res Result
	for i, r := range f.Responses {
		if _, ok := e.Next(); !ok {
			res.Unused = len(f.Responses) - i
			break
		}
		out, err := e.Submit(r.TemplateID, time.Duration(r.ReactionMS)*time.Millisecond)
		if err != nil {
			return Result{}, fmt.Errorf("replay trial %d: %w", i+1, err)
		}
		res.Outcomes = append(res.Outcomes, out)
	}
	res.Entries = e.Entries()
	res.Summary = e.Summary()
	res.Terminated = e.Terminated()
	return res, nil
}

// Check compares a replay result with the fixture's expectations and returns
// one line per mismatch. A fixture without expectations always passes.
func Check(f *Fixture, res Result) []string {
	if f.Expected == nil {
		return nil
	}
	var diffs []string
	if res.Summary != f.Expected.Summary {
		diffs = append(diffs, fmt.Sprintf("summary: expected %+v, got %+v", f.Expected.Summary, res.Summary))
	}
	if got := PerseverativeTrials(res.Entries); !slices.Equal(got, f.Expected.PerseverativeTrials) {
		diffs = append(diffs, fmt.Sprintf("perseverative trials: expected %v, got %v", f.Expected.PerseverativeTrials, got))
	}
	if got := RuleChanges(res.Entries); !slices.Equal(got, f.Expected.RuleChanges) {
		diffs = append(diffs, fmt.Sprintf("rule changes: expected %v, got %v", f.Expected.RuleChanges, got))
	}
	return diffs
}

// #endregion replay

// #region extract

// PerseverativeTrials lists the trial numbers flagged perseverative.
func PerseverativeTrials(entries []triallog.Entry) []int {
	out := []int{}
	for _, e := range entries {
		if !e.IsMarker() && e.Trial.Perseverative {
			out = append(out, e.Trial.Index)
		}
	}
	return out
}

// RuleChanges lists, per marker, the number of the trial it follows.
func RuleChanges(entries []triallog.Entry) []int {
	out := []int{}
	last := 0
	for _, e := range entries {
		if e.IsMarker() {
			out = append(out, last)
			continue
		}
		last = e.Trial.Index
	}
	return out
}

// #endregion extract
