package triallog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/wcst/go-controller/internal/rule"
)

func trial(i int, correct, persev bool) TrialRecord {
	return TrialRecord{Index: i, Stimulus: "1RT", Response: rule.Color, Correct: correct, Perseverative: persev, Rule: rule.Color}
}

func TestLog_AppendAndRead(t *testing.T) {
	l := New()
	assert.Equal(t, 0, l.AppendTrial(trial(1, true, false)))
	l.AppendMarker(Marker{Rule: rule.Form, Categories: 1})
	assert.Equal(t, 1, l.AppendTrial(trial(2, false, false)))

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 2, l.TrialCount())

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.False(t, entries[0].IsMarker())
	assert.True(t, entries[1].IsMarker())
	assert.Equal(t, rule.Form, entries[1].Marker.Rule)
	assert.Equal(t, 2, l.Trial(1).Index)

	// copies do not alias the log
	entries[0].Trial.Correct = false
	assert.True(t, l.Trial(0).Correct)
}

func TestLog_LastTrialsSkipsMarkers(t *testing.T) {
	l := New()
	assert.Empty(t, l.LastTrials(3))

	l.AppendTrial(trial(1, true, false))
	l.AppendTrial(trial(2, true, false))
	assert.Len(t, l.LastTrials(3), 2)

	l.AppendMarker(Marker{Rule: rule.Form, Categories: 1})
	l.AppendTrial(trial(3, false, false))

	last := l.LastTrials(3)
	require.Len(t, last, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{last[0].Index, last[1].Index, last[2].Index})
}

func TestLog_MarkPerseverative(t *testing.T) {
	l := New()
	l.AppendTrial(trial(1, true, false))
	l.AppendMarker(Marker{Rule: rule.Form, Categories: 1})
	l.AppendTrial(trial(2, true, false))

	l.MarkPerseverative(1)
	assert.True(t, l.Trial(1).Perseverative)
	assert.False(t, l.Trial(0).Perseverative)
	assert.True(t, l.Entries()[2].Trial.Perseverative)

	assert.Panics(t, func() { l.MarkPerseverative(2) })
	assert.Panics(t, func() { l.MarkPerseverative(-1) })
}
