package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielpatrickdp/wcst/go-controller/internal/card"
	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: the stimulus
// order a participant saw, the choices they made, and optionally the scoring
// those choices must reproduce.
type Fixture struct {
	Description string            `json:"description"`
	Stimuli     []string          `json:"stimuli"`
	Responses   []FixtureResponse `json:"responses"`
	Expected    *FixtureExpected  `json:"expected,omitempty"`
}

// FixtureResponse is one recorded choice.
type FixtureResponse struct {
	TemplateID int   `json:"template_id"`
	ReactionMS int64 `json:"reaction_ms"`
}

// FixtureExpected captures the scoring a replay must reproduce.
type FixtureExpected struct {
	Summary triallog.Summary `json:"summary"`
	// PerseverativeTrials lists 1-based trial numbers flagged perseverative,
	// including retroactive flags.
	PerseverativeTrials []int `json:"perseverative_trials"`
	// RuleChanges lists the trial numbers after which a rule-change marker appears.
	RuleChanges []int `json:"rule_changes"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the fixture as indented JSON.
func (f *Fixture) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create fixture dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// Deck converts the stimulus list into a scripted deck.
func (f *Fixture) Deck() (*card.Deck, error) {
	cards := make([]card.Card, len(f.Stimuli))
	for i, s := range f.Stimuli {
		c, err := card.ParseDescriptor(s)
		if err != nil {
			return nil, fmt.Errorf("stimulus %d: %w", i+1, err)
		}
		cards[i] = c
	}
	return card.NewDeck(cards), nil
}

// FromEntries builds a fixture from a recorded log. The recorded scoring
// becomes the expectation, so replaying the fixture re-verifies it.
func FromEntries(description string, entries []triallog.Entry, categories int) *Fixture {
	f := &Fixture{Description: description}
	for _, e := range entries {
		if e.IsMarker() {
			continue
		}
		f.Stimuli = append(f.Stimuli, e.Trial.Stimulus)
		f.Responses = append(f.Responses, FixtureResponse{
			TemplateID: e.Trial.TemplateID,
			ReactionMS: e.Trial.ReactionMS,
		})
	}
	f.Expected = &FixtureExpected{
		Summary:             triallog.Summarize(entries, categories),
		PerseverativeTrials: PerseverativeTrials(entries),
		RuleChanges:         RuleChanges(entries),
	}
	return f
}

// #endregion fixture-loader
