package rule

// #region scheduler
// Scheduler owns the active rule, the correct-response streak and the
// termination condition.
type Scheduler struct {
	schedule  []Dimension
	cyclic    bool
	maxTrials int // 0 means unlimited

	ruleIndex          int
	consecutiveCorrect int
	categories         int
}

// NewScheduler returns the scored-session scheduler: the fixed schedule,
// MaxTrials trials, MaxCategories categories.
func NewScheduler() *Scheduler {
	return &Scheduler{
		schedule:  Schedule(),
		maxTrials: MaxTrials,
	}
}

// NewCyclicScheduler returns a practice scheduler that rotates Color, Form,
// Number indefinitely. maxTrials of zero never terminates.
func NewCyclicScheduler(maxTrials int) *Scheduler {
	return &Scheduler{
		schedule:  []Dimension{Color, Form, Number},
		cyclic:    true,
		maxTrials: maxTrials,
	}
}

// Rule is the active matching rule. After the schedule is exhausted it keeps
// reporting the last rule.
func (s *Scheduler) Rule() Dimension {
	if s.ruleIndex >= len(s.schedule) {
		return s.schedule[len(s.schedule)-1]
	}
	return s.schedule[s.ruleIndex]
}

// ConsecutiveCorrect is the current streak under the active rule.
func (s *Scheduler) ConsecutiveCorrect() int { return s.consecutiveCorrect }

// CategoriesCompleted counts completed categories.
func (s *Scheduler) CategoriesCompleted() int { return s.categories }

// Exhausted reports whether every scheduled rule has been completed.
func (s *Scheduler) Exhausted() bool {
	return !s.cyclic && s.ruleIndex >= len(s.schedule)
}

// RecordOutcome updates the streak. When the streak reaches StreakToAdvance
// the rule advances and the Advance is returned with ok set.
func (s *Scheduler) RecordOutcome(correct bool) (adv Advance, ok bool) {
	if !correct {
		s.consecutiveCorrect = 0
		return Advance{}, false
	}
	s.consecutiveCorrect++
	if s.consecutiveCorrect == StreakToAdvance {
		return s.AdvanceRule(), true
	}
	return Advance{}, false
}

// AdvanceRule completes the current category and moves to the next rule.
func (s *Scheduler) AdvanceRule() Advance {
	s.consecutiveCorrect = 0
	s.categories++
	s.ruleIndex++
	if s.cyclic {
		s.ruleIndex %= len(s.schedule)
	}
	if s.ruleIndex >= len(s.schedule) {
		return Advance{Rule: s.Rule(), Categories: s.categories, Exhausted: true}
	}
	return Advance{Rule: s.schedule[s.ruleIndex], Categories: s.categories}
}

// IsTerminal reports whether the session is over. It is checked before each
// draw, so termination never consumes a card.
func (s *Scheduler) IsTerminal(trialsConsumed int) bool {
	if s.maxTrials > 0 && trialsConsumed >= s.maxTrials {
		return true
	}
	return !s.cyclic && s.categories >= len(s.schedule)
}

// #endregion scheduler
