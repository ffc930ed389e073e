package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// #region fixture-tests

// TestFixture_PerseverationSession is the primary scoring regression: any
// drift in the classifier, tracker or scheduler shows up here.
func TestFixture_PerseverationSession(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "perseveration_session.json"))
	require.NoError(t, err)

	res, err := Replay(f, nil)
	require.NoError(t, err)
	assert.Empty(t, Check(f, res))
	assert.False(t, res.Terminated)
	assert.Zero(t, res.Unused)

	require.Len(t, res.Outcomes, 21)
	assert.True(t, res.Outcomes[13].RuleChanged)
	assert.False(t, res.Outcomes[17].Record.Perseverative, "trial 18 is flagged only retroactively")
	assert.Equal(t, "61.9%", res.Summary.AccuracyPercent())
}

func TestLoadFixture_NotFound(t *testing.T) {
	_, err := LoadFixture("testdata/nonexistent.json")
	assert.Error(t, err)
}

func TestLoadFixture_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not valid json}"), 0644))

	_, err := LoadFixture(path)
	assert.Error(t, err)
}

func TestFixture_SaveAndLoad(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "perseveration_session.json"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "copy.json")
	require.NoError(t, f.Save(path))
	again, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestFixture_BadStimulus(t *testing.T) {
	f := &Fixture{Stimuli: []string{"9ZZ"}, Responses: []FixtureResponse{{TemplateID: 1}}}
	_, err := Replay(f, nil)
	assert.Error(t, err)
}

// #endregion fixture-tests
