// Package persev scores perseveration: errors that keep following a
// dimension the participant has locked onto within the current rule period.
package persev

import (
	"fmt"

	"github.com/danielpatrickdp/wcst/go-controller/internal/rule"
	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

// #region state
// State is the tracker's view of the current rule period. rule.NoDimension
// marks an unset dimension.
type State struct {
	PTP                  rule.Dimension // perseverated-to principle
	LastIncorrect        rule.Dimension
	ConsecutiveIncorrect int
}

// #endregion state

// #region window
// Window is the slice of the trial log the tracker may revise.
type Window interface {
	TrialCount() int
	LastTrials(n int) []triallog.TrialRecord
	MarkPerseverative(ordinal int)
}

var _ Window = (*triallog.Log)(nil)

// #endregion window

// #region tracker
// Tracker holds perseveration state for one rule period.
type Tracker struct {
	state State
}

// NewTracker returns a tracker with no principle established.
func NewTracker() *Tracker {
	return &Tracker{}
}

// State returns a snapshot of the tracker state.
func (t *Tracker) State() State { return t.state }

// Reset clears all state. Called whenever the rule advances.
func (t *Tracker) Reset() { t.state = State{} }

// Observe updates state for one response and returns that trial's own
// perseverative flag. The flag is judged against the principle as it stood
// before this trial, so the trial that establishes the principle is never
// flagged by it.
func (t *Tracker) Observe(response rule.Dimension, correct bool) bool {
	if !response.Valid() {
		panic(fmt.Sprintf("persev: invalid response dimension %v", response))
	}
	if correct {
		t.state.LastIncorrect = rule.NoDimension
		t.state.ConsecutiveIncorrect = 0
		return false
	}

	s := &t.state
	perseverative := s.PTP != rule.NoDimension && response == s.PTP

	if response == s.LastIncorrect {
		s.ConsecutiveIncorrect++
	} else {
		s.ConsecutiveIncorrect = 1
		s.LastIncorrect = response
	}
	if s.PTP == rule.NoDimension && s.ConsecutiveIncorrect == 2 {
		s.PTP = s.LastIncorrect
	}
	return perseverative
}

// Sandwich applies the retroactive rule to the three most recent trials of w:
// a correct response between two perseverative errors is itself marked
// perseverative when it matched on the principle. It only ever adds a flag
// and reports whether it did.
func (t *Tracker) Sandwich(w Window) bool {
	last3 := w.LastTrials(3)
	if len(last3) < 3 {
		return false
	}
	first, middle, last := last3[0], last3[1], last3[2]
	if !(first.Perseverative && !first.Correct) || !(last.Perseverative && !last.Correct) || !middle.Correct {
		return false
	}
	if middle.Response != t.state.PTP || middle.Perseverative {
		return false
	}
	w.MarkPerseverative(w.TrialCount() - 2)
	return true
}

// #endregion tracker
