// Package triallog holds the ordered record of a session: one TrialRecord
// per trial, interleaved with rule-change markers.
package triallog

import "fmt"

// Log is append-only. The one sanctioned edit is MarkPerseverative.
type Log struct {
	entries []Entry
	trials  []int // entry positions of trial records, in trial order
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// AppendTrial appends r and returns its ordinal among trial records.
func (l *Log) AppendTrial(r TrialRecord) int {
	l.entries = append(l.entries, Entry{Kind: KindTrial, Trial: r})
	l.trials = append(l.trials, len(l.entries)-1)
	return len(l.trials) - 1
}

// AppendMarker appends a rule-change marker.
func (l *Log) AppendMarker(m Marker) {
	l.entries = append(l.entries, Entry{Kind: KindMarker, Marker: m})
}

// Len counts entries, markers included.
func (l *Log) Len() int { return len(l.entries) }

// TrialCount counts trial records only.
func (l *Log) TrialCount() int { return len(l.trials) }

// Entries returns a copy of every entry in order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Trials returns a copy of the trial records in order.
func (l *Log) Trials() []TrialRecord {
	out := make([]TrialRecord, len(l.trials))
	for i, pos := range l.trials {
		out[i] = l.entries[pos].Trial
	}
	return out
}

// Trial returns the trial record at ordinal i.
func (l *Log) Trial(i int) TrialRecord {
	return l.entries[l.trials[i]].Trial
}

// LastTrials returns up to n most recent trial records, oldest first.
// Markers are skipped.
func (l *Log) LastTrials(n int) []TrialRecord {
	if n > len(l.trials) {
		n = len(l.trials)
	}
	out := make([]TrialRecord, n)
	for i, pos := range l.trials[len(l.trials)-n:] {
		out[i] = l.entries[pos].Trial
	}
	return out
}

// MarkPerseverative sets the perseverative flag of the trial at ordinal i.
// It is the only mutation of a stored record.
func (l *Log) MarkPerseverative(i int) {
	if i < 0 || i >= len(l.trials) {
		panic(fmt.Sprintf("triallog: trial ordinal %d out of range [0,%d)", i, len(l.trials)))
	}
	l.entries[l.trials[i]].Trial.Perseverative = true
}
