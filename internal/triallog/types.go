package triallog

import "github.com/danielpatrickdp/wcst/go-controller/internal/rule"

// #region entry-kind
// Kind distinguishes trial records from rule-change markers.
type Kind uint8

const (
	KindTrial Kind = iota
	KindMarker
)

func (k Kind) String() string {
	if k == KindMarker {
		return "marker"
	}
	return "trial"
}

// #endregion entry-kind

// #region trial-record
// TrialRecord is the outcome of one scored trial. Once appended, only
// Perseverative may change.
type TrialRecord struct {
	Index         int            `json:"trial"` // 1-based trial number
	Stimulus      string         `json:"stimulus"`
	TemplateID    int            `json:"template_id"`
	Response      rule.Dimension `json:"response"`
	Correct       bool           `json:"correct"`
	Perseverative bool           `json:"perseverative"`
	Ambiguous     bool           `json:"ambiguous"`
	Rule          rule.Dimension `json:"rule"`
	ReactionMS    int64          `json:"reaction_ms"`
}

// #endregion trial-record

// #region marker
// Marker is the sentinel appended when the rule advances. It carries the new
// rule and the categories completed so far.
type Marker struct {
	Rule       rule.Dimension
	Categories int
}

// #endregion marker

// #region entry
// Entry is one row of the log: a trial record or a marker, selected by Kind.
type Entry struct {
	Kind   Kind
	Trial  TrialRecord
	Marker Marker
}

// IsMarker reports whether e is a rule-change marker.
func (e Entry) IsMarker() bool { return e.Kind == KindMarker }

// #endregion entry
