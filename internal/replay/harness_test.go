package replay

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/wcst/go-controller/internal/card"
	"github.com/danielpatrickdp/wcst/go-controller/internal/classify"
	"github.com/danielpatrickdp/wcst/go-controller/internal/rule"
)

// byRuleFixture answers every stimulus of a shuffled deck on the rule in force,
// tracking the schedule by hand.
func byRuleFixture(seed uint64, n int) *Fixture {
	deck := card.Generate(rand.New(rand.NewPCG(seed, seed)))
	f := &Fixture{Description: "by rule"}
	schedule := rule.Schedule()
	for i, c := range deck.Cards() {
		f.Stimuli = append(f.Stimuli, c.Descriptor())
		if i >= n {
			continue
		}
		active := schedule[(i/rule.StreakToAdvance)%len(schedule)]
		for _, tpl := range card.Templates() {
			if classify.Matches(c, tpl.Card, active) {
				f.Responses = append(f.Responses, FixtureResponse{TemplateID: tpl.ID, ReactionMS: 900})
			}
		}
	}
	return f
}

func TestReplay_SixCategoriesLeavesUnused(t *testing.T) {
	f := byRuleFixture(4, 70)
	require.Len(t, f.Responses, 70)

	res, err := Replay(f, nil)
	require.NoError(t, err)
	assert.True(t, res.Terminated)
	assert.Equal(t, 10, res.Unused)
	assert.Equal(t, 60, res.Summary.TotalTrials)
	assert.Equal(t, 6, res.Summary.CategoriesCompleted)
	assert.Equal(t, []int{10, 20, 30, 40, 50}, RuleChanges(res.Entries))
	assert.Empty(t, PerseverativeTrials(res.Entries))
}

func TestReplay_TooFewStimuli(t *testing.T) {
	f := &Fixture{
		Stimuli:   []string{"1RT"},
		Responses: []FixtureResponse{{TemplateID: 1}, {TemplateID: 1}},
	}
	_, err := Replay(f, nil)
	assert.Error(t, err)
}

func TestReplay_BadTemplate(t *testing.T) {
	f := &Fixture{Stimuli: []string{"1RT"}, Responses: []FixtureResponse{{TemplateID: 7}}}
	_, err := Replay(f, nil)
	assert.Error(t, err)
}

func TestFromEntries_RoundTrip(t *testing.T) {
	f := byRuleFixture(8, 25)
	f.Stimuli = f.Stimuli[:25]
	res, err := Replay(f, nil)
	require.NoError(t, err)

	exported := FromEntries("exported", res.Entries, res.Summary.CategoriesCompleted)
	assert.Equal(t, f.Stimuli, exported.Stimuli)
	assert.Equal(t, f.Responses, exported.Responses)
	require.NotNil(t, exported.Expected)
	assert.Equal(t, []int{10, 20}, exported.Expected.RuleChanges)

	again, err := Replay(exported, nil)
	require.NoError(t, err)
	assert.Empty(t, Check(exported, again))
}

func TestCheck_ReportsMismatch(t *testing.T) {
	f := byRuleFixture(2, 12)
	res, err := Replay(f, nil)
	require.NoError(t, err)
	assert.Empty(t, Check(f, res), "no expectations means no diffs")

	f.Expected = &FixtureExpected{PerseverativeTrials: []int{3}, RuleChanges: []int{}}
	diffs := Check(f, res)
	assert.Len(t, diffs, 3)
}
