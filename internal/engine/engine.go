// Package engine runs a card-sorting session one trial at a time: draw a
// stimulus, classify the response, score perseveration, log, and advance the
// rule on schedule.
package engine

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/danielpatrickdp/wcst/go-controller/internal/card"
	"github.com/danielpatrickdp/wcst/go-controller/internal/classify"
	"github.com/danielpatrickdp/wcst/go-controller/internal/persev"
	"github.com/danielpatrickdp/wcst/go-controller/internal/rule"
	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

// #region engine
// Engine owns all state of one session. It is not safe for concurrent use;
// a session is strictly sequential.
type Engine struct {
	mode      Mode
	deck      *card.Deck
	templates []card.Template
	scheduler *rule.Scheduler
	tracker   *persev.Tracker
	log       *triallog.Log
	logger    *zap.Logger

	trials  int // trials consumed
	pending *card.Card
}

// New builds an engine ready to present its first stimulus.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	deck := cfg.Deck
	if deck == nil {
		rng := cfg.Rand
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		deck = card.Generate(rng)
	}

	sched := rule.NewScheduler()
	if cfg.Mode == Practice {
		sched = rule.NewCyclicScheduler(cfg.PracticeTrials)
	}

	return &Engine{
		mode:      cfg.Mode,
		deck:      deck,
		templates: card.Templates(),
		scheduler: sched,
		tracker:   persev.NewTracker(),
		log:       triallog.New(),
		logger:    logger.With(zap.Stringer("mode", cfg.Mode)),
	}
}

// #endregion engine

// #region next
// Next presents the next stimulus. It returns false once the session is
// over, in which case no card is consumed. Calling Next while a stimulus is
// pending returns the same card.
func (e *Engine) Next() (card.Card, bool) {
	if e.pending != nil {
		return *e.pending, true
	}
	if e.Terminated() {
		return card.Card{}, false
	}
	var c card.Card
	if e.mode == Practice {
		c = e.deck.DrawCyclic()
	} else {
		c = e.deck.Draw()
	}
	e.pending = &c
	return c, true
}

// Pending returns the stimulus awaiting a response, if any.
func (e *Engine) Pending() (card.Card, bool) {
	if e.pending == nil {
		return card.Card{}, false
	}
	return *e.pending, true
}

// #endregion next

// #region submit
// Submit scores the participant's choice for the pending stimulus. rt is
// the reaction time measured by the caller.
func (e *Engine) Submit(templateID int, rt time.Duration) (Outcome, error) {
	if e.pending == nil {
		if e.Terminated() {
			return Outcome{}, ErrTerminated
		}
		return Outcome{}, ErrNoStimulus
	}
	chosen, ok := card.TemplateByID(templateID)
	if !ok {
		return Outcome{}, ErrUnknownTemplate
	}
	stimulus := *e.pending
	e.pending = nil
	e.trials++

	active := e.scheduler.Rule()
	res := classify.Classify(stimulus, chosen, active, e.templates)
	perseverative := e.tracker.Observe(res.Dimension, res.Correct)

	rec := triallog.TrialRecord{
		Index:         e.trials,
		Stimulus:      stimulus.Descriptor(),
		TemplateID:    templateID,
		Response:      res.Dimension,
		Correct:       res.Correct,
		Perseverative: perseverative,
		Ambiguous:     res.Ambiguous,
		Rule:          active,
		ReactionMS:    rt.Milliseconds(),
	}
	ordinal := e.log.AppendTrial(rec)
	if e.tracker.Sandwich(e.log) {
		e.logger.Debug("retroactive perseveration",
			zap.Int("trial", e.log.Trial(ordinal-1).Index))
	}

	e.logger.Debug("trial scored",
		zap.Int("trial", rec.Index),
		zap.String("stimulus", rec.Stimulus),
		zap.Int("template", templateID),
		zap.Stringer("rule", active),
		zap.Stringer("response", res.Dimension),
		zap.Bool("correct", res.Correct),
		zap.Bool("perseverative", perseverative),
		zap.Int64("rt_ms", rec.ReactionMS),
	)

	out := Outcome{Record: rec, Categories: e.scheduler.CategoriesCompleted()}
	if adv, advanced := e.scheduler.RecordOutcome(res.Correct); advanced {
		out.Categories = adv.Categories
		if !adv.Exhausted {
			e.tracker.Reset()
			e.log.AppendMarker(triallog.Marker{Rule: adv.Rule, Categories: adv.Categories})
			out.RuleChanged = true
			out.NewRule = adv.Rule
		}
		e.logger.Info("category completed",
			zap.Int("categories", adv.Categories),
			zap.Stringer("rule", adv.Rule),
			zap.Bool("exhausted", adv.Exhausted),
		)
	}
	out.Terminated = e.Terminated()
	if out.Terminated {
		e.logger.Info("session terminated",
			zap.Int("trials", e.trials),
			zap.Int("categories", e.scheduler.CategoriesCompleted()),
		)
	}
	return out, nil
}

// #endregion submit

// #region accessors
// Terminated is the termination signal: the trial budget is spent or every
// scheduled category is complete.
func (e *Engine) Terminated() bool {
	return e.scheduler.IsTerminal(e.trials)
}

// Mode reports whether the engine is scored or practice.
func (e *Engine) Mode() Mode { return e.mode }

// Rule is the active matching rule.
func (e *Engine) Rule() rule.Dimension { return e.scheduler.Rule() }

// TrialsConsumed counts responses scored so far.
func (e *Engine) TrialsConsumed() int { return e.trials }

// CategoriesCompleted counts completed categories.
func (e *Engine) CategoriesCompleted() int { return e.scheduler.CategoriesCompleted() }

// Perseveration returns the tracker state for the current rule period.
func (e *Engine) Perseveration() persev.State { return e.tracker.State() }

// Templates returns the template set shown to the participant.
func (e *Engine) Templates() []card.Template {
	out := make([]card.Template, len(e.templates))
	copy(out, e.templates)
	return out
}

// Entries returns a read-only copy of the trial log.
func (e *Engine) Entries() []triallog.Entry { return e.log.Entries() }

// Summary computes the session metrics from the log.
func (e *Engine) Summary() triallog.Summary {
	return triallog.Summarize(e.log.Entries(), e.scheduler.CategoriesCompleted())
}

// #endregion accessors
