package card

import (
	"fmt"
	"strconv"
)

// #region attributes
// Shape is the form attribute of a card.
type Shape byte

const (
	Triangle Shape = 'T'
	Star     Shape = 'S'
	Cross    Shape = 'C'
	Circle   Shape = 'O'
)

// Color is the color attribute of a card.
type Color byte

const (
	Red    Color = 'R'
	Green  Color = 'G'
	Blue   Color = 'B'
	Yellow Color = 'Y'
)

// Shapes, Colors and Numbers list every attribute value in deck construction order.
var (
	Shapes  = [4]Shape{Triangle, Star, Cross, Circle}
	Colors  = [4]Color{Red, Green, Blue, Yellow}
	Numbers = [4]int{1, 2, 3, 4}
)

func (s Shape) valid() bool {
	switch s {
	case Triangle, Star, Cross, Circle:
		return true
	}
	return false
}

func (c Color) valid() bool {
	switch c {
	case Red, Green, Blue, Yellow:
		return true
	}
	return false
}

// Name returns the singular English name, e.g. "star".
func (s Shape) Name() string {
	switch s {
	case Triangle:
		return "triangle"
	case Star:
		return "star"
	case Cross:
		return "cross"
	case Circle:
		return "circle"
	}
	return "?"
}

// Name returns the English name, e.g. "green".
func (c Color) Name() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	}
	return "?"
}

// #endregion attributes

// #region card
// Card is a stimulus or template card. It is a value type and never mutated.
type Card struct {
	Shape  Shape
	Color  Color
	Number int
}

// Descriptor renders the card as <number><color><shape>, e.g. "2GS".
func (c Card) Descriptor() string {
	return strconv.Itoa(c.Number) + string(rune(c.Color)) + string(rune(c.Shape))
}

// Describe spells the card out, e.g. "2 green stars".
func (c Card) Describe() string {
	noun := c.Shape.Name()
	if c.Number != 1 {
		if c.Shape == Cross {
			noun += "es"
		} else {
			noun += "s"
		}
	}
	return fmt.Sprintf("%d %s %s", c.Number, c.Color.Name(), noun)
}

func (c Card) String() string {
	return c.Descriptor()
}

// ParseDescriptor is the inverse of Card.Descriptor.
func ParseDescriptor(s string) (Card, error) {
	if len(s) != 3 {
		return Card{}, fmt.Errorf("card descriptor %q: want 3 characters", s)
	}
	n := int(s[0] - '0')
	c := Card{Number: n, Color: Color(s[1]), Shape: Shape(s[2])}
	if n < 1 || n > 4 {
		return Card{}, fmt.Errorf("card descriptor %q: number out of range", s)
	}
	if !c.Color.valid() {
		return Card{}, fmt.Errorf("card descriptor %q: unknown color %q", s, s[1])
	}
	if !c.Shape.valid() {
		return Card{}, fmt.Errorf("card descriptor %q: unknown shape %q", s, s[2])
	}
	return c, nil
}

// #endregion card

// #region templates
// Template is one of the four reference cards a participant sorts onto.
type Template struct {
	ID int
	Card
}

// templates differ pairwise in every attribute, so a stimulus agrees with at
// most one template per dimension.
var templates = [4]Template{
	{ID: 1, Card: Card{Shape: Triangle, Color: Red, Number: 1}},
	{ID: 2, Card: Card{Shape: Star, Color: Green, Number: 2}},
	{ID: 3, Card: Card{Shape: Cross, Color: Yellow, Number: 3}},
	{ID: 4, Card: Card{Shape: Circle, Color: Blue, Number: 4}},
}

// Templates returns the fixed template set.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates[:])
	return out
}

// TemplateByID looks up a template by its 1-based id.
func TemplateByID(id int) (Template, bool) {
	if id < 1 || id > len(templates) {
		return Template{}, false
	}
	return templates[id-1], true
}

// #endregion templates
