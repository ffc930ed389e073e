package engine

import (
	"errors"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/danielpatrickdp/wcst/go-controller/internal/card"
	"github.com/danielpatrickdp/wcst/go-controller/internal/rule"
	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

// #region errors
var (
	// ErrNoStimulus is returned by Submit when no card is awaiting a response.
	ErrNoStimulus = errors.New("engine: no stimulus awaiting a response")
	// ErrUnknownTemplate is returned by Submit for a template id outside 1..4.
	ErrUnknownTemplate = errors.New("engine: unknown template")
	// ErrTerminated is returned by Submit after the session has ended.
	ErrTerminated = errors.New("engine: session terminated")
)

// #endregion errors

// #region mode
// Mode selects scored or practice behavior for the shared engine.
type Mode uint8

const (
	// Scored runs the clinical protocol: one deck, six categories.
	Scored Mode = iota
	// Practice rotates rules indefinitely over a wrapping deck. Its log is
	// never persisted.
	Practice
)

func (m Mode) String() string {
	if m == Practice {
		return "practice"
	}
	return "scored"
}

// #endregion mode

// #region config
// Config configures an Engine. Zero fields take defaults.
type Config struct {
	Mode Mode
	// Deck supplies stimuli. Defaults to a freshly generated deck from Rand.
	Deck *card.Deck
	// Rand seeds the default deck. Defaults to an unseeded PCG.
	Rand *rand.Rand
	// PracticeTrials caps a practice session; 0 runs until abandoned.
	PracticeTrials int
	Logger         *zap.Logger
}

// #endregion config

// #region outcome
// Outcome is returned for every submitted response. It carries the freshly
// logged record for immediate feedback.
type Outcome struct {
	Record triallog.TrialRecord
	// RuleChanged is set when this response completed a category.
	RuleChanged bool
	NewRule     rule.Dimension
	Categories  int
	// Terminated is set when no further trial will be presented.
	Terminated bool
}

// #endregion outcome
