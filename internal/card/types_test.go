package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_RoundTrip(t *testing.T) {
	for _, c := range Universe() {
		got, err := ParseDescriptor(c.Descriptor())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	assert.Equal(t, "2GS", Card{Shape: Star, Color: Green, Number: 2}.Descriptor())
}

func TestParseDescriptor_Invalid(t *testing.T) {
	for _, s := range []string{"", "1R", "5RT", "0RT", "1XT", "1RX", "1RTT"} {
		_, err := ParseDescriptor(s)
		assert.Error(t, err, s)
	}
}

func TestTemplates_Fixed(t *testing.T) {
	ts := Templates()
	require.Len(t, ts, 4)
	assert.Equal(t, "1RT", ts[0].Descriptor())
	assert.Equal(t, "2GS", ts[1].Descriptor())
	assert.Equal(t, "3YC", ts[2].Descriptor())
	assert.Equal(t, "4BO", ts[3].Descriptor())

	// pairwise distinct on every attribute
	for i := range ts {
		for j := i + 1; j < len(ts); j++ {
			assert.NotEqual(t, ts[i].Shape, ts[j].Shape)
			assert.NotEqual(t, ts[i].Color, ts[j].Color)
			assert.NotEqual(t, ts[i].Number, ts[j].Number)
		}
	}

	ts[0].Number = 9
	assert.Equal(t, 1, Templates()[0].Number, "Templates must return a copy")
}

func TestTemplateByID(t *testing.T) {
	tpl, ok := TemplateByID(3)
	require.True(t, ok)
	assert.Equal(t, Cross, tpl.Shape)

	_, ok = TemplateByID(0)
	assert.False(t, ok)
	_, ok = TemplateByID(5)
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "1 red triangle", Card{Shape: Triangle, Color: Red, Number: 1}.Describe())
	assert.Equal(t, "3 yellow crosses", Card{Shape: Cross, Color: Yellow, Number: 3}.Describe())
	assert.Equal(t, "4 blue circles", Card{Shape: Circle, Color: Blue, Number: 4}.Describe())
}
