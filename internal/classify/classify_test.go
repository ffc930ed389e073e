package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielpatrickdp/wcst/go-controller/internal/card"
	"github.com/danielpatrickdp/wcst/go-controller/internal/rule"
)

func mustCard(t *testing.T, desc string) card.Card {
	t.Helper()
	c, err := card.ParseDescriptor(desc)
	if err != nil {
		t.Fatalf("parse %q: %v", desc, err)
	}
	return c
}

func tpl(id int) card.Template {
	t, _ := card.TemplateByID(id)
	return t
}

func TestClassify_Correctness(t *testing.T) {
	ts := card.Templates()
	stim := mustCard(t, "3RS") // red like 1, star like 2, three like 3

	tests := []struct {
		name    string
		chosen  int
		active  rule.Dimension
		correct bool
		dim     rule.Dimension
	}{
		{"color rule, red template", 1, rule.Color, true, rule.Color},
		{"color rule, star template", 2, rule.Color, false, rule.Form},
		{"form rule, star template", 2, rule.Form, true, rule.Form},
		{"number rule, three template", 3, rule.Number, true, rule.Number},
		{"number rule, four template", 4, rule.Number, false, rule.Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(stim, tpl(tt.chosen), tt.active, ts)
			assert.Equal(t, tt.correct, res.Correct)
			assert.Equal(t, tt.dim, res.Dimension)
		})
	}
}

func TestResponseDimension_ColorBeatsForm(t *testing.T) {
	// 2RT shares color and shape with template 1
	got := ResponseDimension(mustCard(t, "2RT"), tpl(1).Card)
	assert.Equal(t, rule.Color, got)

	// shape and number, no color
	got = ResponseDimension(mustCard(t, "1BT"), tpl(1).Card)
	assert.Equal(t, rule.Form, got)
}

func TestAmbiguous(t *testing.T) {
	ts := card.Templates()
	// 1BT: number matches template 1, shape matches template 1, color matches template 4
	assert.True(t, Ambiguous(mustCard(t, "1BT"), ts))
	// 3RS matches three templates on one attribute each
	assert.True(t, Ambiguous(mustCard(t, "3RS"), ts))
	// every stimulus matches exactly one template per attribute
	for _, c := range card.Universe() {
		assert.True(t, Ambiguous(c, ts), c.Descriptor())
	}
	// a reduced template set can leave a single match
	only := []card.Template{tpl(1)}
	assert.False(t, Ambiguous(mustCard(t, "2GT"), only))
	assert.True(t, Ambiguous(mustCard(t, "2RT"), only))
}

func TestClassify_AmbiguityIgnoresChoice(t *testing.T) {
	ts := card.Templates()
	stim := mustCard(t, "4YS")
	for id := 1; id <= 4; id++ {
		assert.Equal(t, Ambiguous(stim, ts), Classify(stim, tpl(id), rule.Color, ts).Ambiguous)
	}
}
