package triallog

import "fmt"

// #region summary
// Summary holds the session metrics derived from a log.
type Summary struct {
	TotalTrials            int `json:"total_trials"`
	Correct                int `json:"correct"`
	PerseverativeErrors    int `json:"perseverative_errors"`
	PerseverativeResponses int `json:"perseverative_responses"`
	CategoriesCompleted    int `json:"categories_completed"`
}

// Summarize computes metrics over entries. Markers are excluded from every
// count; categories comes from the scheduler.
func Summarize(entries []Entry, categories int) Summary {
	s := Summary{CategoriesCompleted: categories}
	for _, e := range entries {
		if e.IsMarker() {
			continue
		}
		r := e.Trial
		s.TotalTrials++
		if r.Correct {
			s.Correct++
		}
		if r.Perseverative {
			s.PerseverativeResponses++
			if !r.Correct {
				s.PerseverativeErrors++
			}
		}
	}
	return s
}

// Accuracy is correct over total trials, 0 for an empty session.
func (s Summary) Accuracy() float64 {
	if s.TotalTrials == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.TotalTrials)
}

// AccuracyPercent formats Accuracy with one decimal, e.g. "83.3%".
func (s Summary) AccuracyPercent() string {
	if s.TotalTrials == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", s.Accuracy()*100)
}

// #endregion summary

// #region correct-runs
// CorrectRuns returns, per entry, the running count of consecutive correct
// responses. Errors and markers reset the count; marker positions hold 0.
func CorrectRuns(entries []Entry) []int {
	runs := make([]int, len(entries))
	n := 0
	for i, e := range entries {
		switch {
		case e.IsMarker():
			n = 0
		case e.Trial.Correct:
			n++
		default:
			n = 0
		}
		runs[i] = n
	}
	return runs
}

// #endregion correct-runs
