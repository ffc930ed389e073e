// Package classify scores a single sort: whether it obeys the active rule,
// which attribute it matched on, and whether the stimulus is ambiguous.
package classify

import (
	"github.com/danielpatrickdp/wcst/go-controller/internal/card"
	"github.com/danielpatrickdp/wcst/go-controller/internal/rule"
)

// Result is the classification of one stimulus/template pair.
type Result struct {
	Correct   bool
	Dimension rule.Dimension
	Ambiguous bool
}

// Classify scores sorting stimulus onto chosen under active. templates is the
// full set shown to the participant and only feeds the ambiguity check.
func Classify(stimulus card.Card, chosen card.Template, active rule.Dimension, templates []card.Template) Result {
	return Result{
		Correct:   Matches(stimulus, chosen.Card, active),
		Dimension: ResponseDimension(stimulus, chosen.Card),
		Ambiguous: Ambiguous(stimulus, templates),
	}
}

// Matches reports whether a and b agree on dimension d.
func Matches(a, b card.Card, d rule.Dimension) bool {
	switch d {
	case rule.Color:
		return a.Color == b.Color
	case rule.Form:
		return a.Shape == b.Shape
	case rule.Number:
		return a.Number == b.Number
	}
	return false
}

// ResponseDimension returns the first attribute, in Color, Form, Number
// order, on which stimulus and chosen agree, or Other when none do.
func ResponseDimension(stimulus, chosen card.Card) rule.Dimension {
	for _, d := range [...]rule.Dimension{rule.Color, rule.Form, rule.Number} {
		if Matches(stimulus, chosen, d) {
			return d
		}
	}
	return rule.Other
}

// Ambiguous counts attribute matches between stimulus and every template and
// reports more than one in total.
func Ambiguous(stimulus card.Card, templates []card.Template) bool {
	matches := 0
	for _, t := range templates {
		for _, d := range [...]rule.Dimension{rule.Color, rule.Form, rule.Number} {
			if Matches(stimulus, t.Card, d) {
				matches++
			}
		}
	}
	return matches > 1
}
