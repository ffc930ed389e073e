package card

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Composition(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		d := Generate(rand.New(rand.NewPCG(seed, seed*7)))
		require.Equal(t, DeckSize, d.Len())

		counts := make(map[Card]int)
		for _, c := range d.Cards() {
			counts[c]++
		}
		require.Len(t, counts, 64, "seed %d", seed)
		for c, n := range counts {
			assert.Equal(t, 2, n, "seed %d card %s", seed, c)
		}
	}
}

func TestGenerate_Shuffles(t *testing.T) {
	a := Generate(rand.New(rand.NewPCG(1, 2))).Cards()
	b := Generate(rand.New(rand.NewPCG(3, 4))).Cards()
	assert.NotEqual(t, a, b)

	again := Generate(rand.New(rand.NewPCG(1, 2))).Cards()
	assert.Equal(t, a, again, "same seed must give the same order")
}

func TestDeck_DrawSequential(t *testing.T) {
	cards := []Card{
		{Shape: Star, Color: Red, Number: 1},
		{Shape: Cross, Color: Blue, Number: 4},
	}
	d := NewDeck(cards)
	assert.Equal(t, cards[0], d.Draw())
	assert.Equal(t, 1, d.Remaining())
	assert.Equal(t, cards[1], d.Draw())
	assert.Equal(t, 2, d.Drawn())
	assert.Panics(t, func() { d.Draw() })
}

func TestDeck_DrawCyclic(t *testing.T) {
	cards := []Card{
		{Shape: Star, Color: Red, Number: 1},
		{Shape: Cross, Color: Blue, Number: 4},
	}
	d := NewDeck(cards)
	got := []Card{d.DrawCyclic(), d.DrawCyclic(), d.DrawCyclic()}
	assert.Equal(t, []Card{cards[0], cards[1], cards[0]}, got)

	assert.Panics(t, func() { NewDeck(nil).DrawCyclic() })
}

func TestNewDeck_Copies(t *testing.T) {
	cards := []Card{{Shape: Star, Color: Red, Number: 1}}
	d := NewDeck(cards)
	cards[0].Number = 3
	assert.Equal(t, 1, d.Draw().Number)
}
