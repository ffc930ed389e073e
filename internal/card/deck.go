package card

import "math/rand/v2"

// DeckSize is two copies of the 64-card universe.
const DeckSize = 2 * 64

// #region universe
// Universe returns the 64 (shape, color, number) combinations.
func Universe() []Card {
	cards := make([]Card, 0, 64)
	for _, s := range Shapes {
		for _, c := range Colors {
			for _, n := range Numbers {
				cards = append(cards, Card{Shape: s, Color: c, Number: n})
			}
		}
	}
	return cards
}

// #endregion universe

// #region deck
// Deck is an ordered stimulus sequence consumed front to back.
type Deck struct {
	cards []Card
	next  int
}

// Generate builds a fresh 128-card deck and shuffles it with Fisher-Yates.
func Generate(rng *rand.Rand) *Deck {
	u := Universe()
	cards := make([]Card, 0, DeckSize)
	cards = append(cards, u...)
	cards = append(cards, u...)
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return &Deck{cards: cards}
}

// NewDeck wraps a fixed card sequence, e.g. one recorded in a replay fixture.
func NewDeck(cards []Card) *Deck {
	cp := make([]Card, len(cards))
	copy(cp, cards)
	return &Deck{cards: cp}
}

// Len is the total number of cards, drawn or not.
func (d *Deck) Len() int { return len(d.cards) }

// Drawn is the number of cards consumed so far.
func (d *Deck) Drawn() int { return d.next }

// Remaining is the number of cards not yet drawn.
func (d *Deck) Remaining() int { return len(d.cards) - d.next }

// Cards returns a copy of the full sequence in deck order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Draw consumes the next card. Callers check termination first; drawing from
// an exhausted deck is a programming error.
func (d *Deck) Draw() Card {
	if d.next >= len(d.cards) {
		panic("card: draw from exhausted deck")
	}
	c := d.cards[d.next]
	d.next++
	return c
}

// DrawCyclic consumes the next card, wrapping to the front when exhausted.
// Practice sessions use it so they can run past one deck.
func (d *Deck) DrawCyclic() Card {
	if len(d.cards) == 0 {
		panic("card: draw from empty deck")
	}
	if d.next >= len(d.cards) {
		d.next = 0
	}
	return d.Draw()
}

// #endregion deck
