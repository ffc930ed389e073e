package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/wcst/go-controller/internal/store"
	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

var (
	inspectSession string
	inspectLast    int
	inspectJSON    bool
)

// inspectCmd lists archived sessions or shows one in detail
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List archived sessions or show one trial by trial",
	Long: `Without --session, lists the most recent sessions with their summary metrics.
With --session, prints the summary and the detailed trial table: running
count of consecutive correct sorts, matched dimension (* when the stimulus is
ambiguous), perseveration flag, and rule-change rows.

Examples:
  wcst inspect --db wcst.db --last 10
  wcst inspect --db wcst.db --session 5f0c... --json`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSession, "session", "", "session id to show in detail")
	inspectCmd.Flags().IntVar(&inspectLast, "last", 20, "show N most recent sessions")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output as JSON instead of table")
}

func runInspect(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	if inspectSession != "" {
		return runDetailMode(out, st, inspectSession, inspectJSON)
	}
	return runListMode(out, st, inspectLast, inspectJSON)
}

// #region list-mode

type listRow struct {
	SessionID   string           `json:"session_id"`
	Participant string           `json:"participant"`
	Mode        string           `json:"mode"`
	StartedAt   string           `json:"started_at"`
	Accuracy    string           `json:"accuracy"`
	Summary     triallog.Summary `json:"summary"`
}

func runListMode(out io.Writer, st *store.Store, last int, jsonOut bool) error {
	sessions, err := st.ListSessions(last)
	if err != nil {
		return err
	}
	rows := make([]listRow, len(sessions))
	for i, s := range sessions {
		rows[i] = listRow{
			SessionID:   s.ID,
			Participant: s.Participant,
			Mode:        s.Mode,
			StartedAt:   s.StartedAt.Format("2006-01-02T15:04:05Z"),
			Accuracy:    s.Summary.AccuracyPercent(),
			Summary:     s.Summary,
		}
	}
	if jsonOut {
		return printJSON(out, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "no sessions found")
		return nil
	}

	fmt.Fprintf(out, "%-10s  %-16s  %6s  %8s  %4s  %4s  %4s  %s\n",
		"Session", "Participant", "Trials", "Accuracy", "PE", "PR", "Cat", "Started")
	for _, r := range rows {
		fmt.Fprintf(out, "%-10s  %-16s  %6d  %8s  %4d  %4d  %4d  %s\n",
			shortID(r.SessionID), r.Participant, r.Summary.TotalTrials, r.Accuracy,
			r.Summary.PerseverativeErrors, r.Summary.PerseverativeResponses,
			r.Summary.CategoriesCompleted, r.StartedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailRow struct {
	Trial         int    `json:"trial,omitempty"`
	Stimulus      string `json:"stimulus,omitempty"`
	CorrectRun    int    `json:"correct_run,omitempty"`
	Response      string `json:"response,omitempty"`
	Perseverative bool   `json:"perseverative,omitempty"`
	Ambiguous     bool   `json:"ambiguous,omitempty"`
	Rule          string `json:"rule"`
	ReactionMS    int64  `json:"reaction_ms,omitempty"`
	// set on rule-change rows only
	Categories int `json:"categories,omitempty"`
}

type detailOutput struct {
	SessionID   string           `json:"session_id"`
	Participant string           `json:"participant"`
	StartedAt   string           `json:"started_at"`
	Accuracy    string           `json:"accuracy"`
	Summary     triallog.Summary `json:"summary"`
	Rows        []detailRow      `json:"rows"`
}

func runDetailMode(out io.Writer, st *store.Store, id string, jsonOut bool) error {
	sess, err := st.GetSession(id)
	if err != nil {
		return err
	}
	entries, err := st.LoadEntries(id)
	if err != nil {
		return err
	}

	d := detailOutput{
		SessionID:   sess.ID,
		Participant: sess.Participant,
		StartedAt:   sess.StartedAt.Format("2006-01-02T15:04:05Z"),
		Accuracy:    sess.Summary.AccuracyPercent(),
		Summary:     sess.Summary,
		Rows:        detailRows(entries),
	}
	if jsonOut {
		return printJSON(out, d)
	}

	fmt.Fprintf(out, "Session:     %s\n", d.SessionID)
	fmt.Fprintf(out, "Participant: %s\n", d.Participant)
	fmt.Fprintf(out, "Started:     %s\n\n", d.StartedAt)
	printSummary(out, d.Summary)

	fmt.Fprintf(out, "\n%5s  %-8s  %4s  %-8s  %2s  %1s  %4s  %7s\n",
		"Trial", "Stimulus", "Run", "Response", "P", "*", "Rule", "RT(ms)")
	for _, r := range d.Rows {
		if r.Trial == 0 {
			fmt.Fprintf(out, "----- completed %d categories, new rule: %s -----\n", r.Categories, r.Rule)
			continue
		}
		run := ""
		if r.CorrectRun > 0 {
			run = fmt.Sprint(r.CorrectRun)
		}
		fmt.Fprintf(out, "%5d  %-8s  %4s  %-8s  %2s  %1s  %4s  %7d\n",
			r.Trial, r.Stimulus, run, r.Response+mark(r.Ambiguous, "*"),
			mark(r.Perseverative, "P"), mark(r.Ambiguous, "*"), r.Rule, r.ReactionMS)
	}
	return nil
}

func detailRows(entries []triallog.Entry) []detailRow {
	runs := triallog.CorrectRuns(entries)
	rows := make([]detailRow, len(entries))
	for i, e := range entries {
		if e.IsMarker() {
			rows[i] = detailRow{Rule: e.Marker.Rule.String(), Categories: e.Marker.Categories}
			continue
		}
		r := e.Trial
		rows[i] = detailRow{
			Trial:         r.Index,
			Stimulus:      r.Stimulus,
			Response:      r.Response.String(),
			Perseverative: r.Perseverative,
			Ambiguous:     r.Ambiguous,
			Rule:          r.Rule.String(),
			ReactionMS:    r.ReactionMS,
		}
		if r.Correct {
			rows[i].CorrectRun = runs[i]
		}
	}
	return rows
}

// #endregion detail-mode

// #region output

func mark(on bool, s string) string {
	if on {
		return s
	}
	return ""
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
