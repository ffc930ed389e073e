package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/wcst/go-controller/internal/card"
	"github.com/danielpatrickdp/wcst/go-controller/internal/engine"
	"github.com/danielpatrickdp/wcst/go-controller/internal/eval"
	"github.com/danielpatrickdp/wcst/go-controller/internal/logging"
	"github.com/danielpatrickdp/wcst/go-controller/internal/store"
	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

var (
	participant string
	seedFlag    int64
)

// runCmd administers a scored session
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Administer a scored session",
	Long: `Presents up to 128 stimulus cards, one at a time. Sort each card onto one of
the four templates by typing its number. The session ends after 128 cards or
six completed categories, whichever comes first; type q to abandon it.

Example:
  wcst run --participant "P-014"`,
	RunE: runScored,
}

// practiceCmd runs an unscored warm-up
var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run an unscored practice session",
	Long: `Same task as run, but the rule change is announced, the deck wraps and
nothing is saved. Type q to stop.`,
	RunE: runPractice,
}

func init() {
	runCmd.Flags().StringVarP(&participant, "participant", "p", "", "participant name (required)")
	runCmd.Flags().Int64Var(&seedFlag, "seed", 0, "deck shuffle seed (overrides config)")
	practiceCmd.Flags().Int64Var(&seedFlag, "seed", 0, "deck shuffle seed (overrides config)")
}

// #region run
func runScored(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(participant)
	if name == "" {
		return errors.New("a participant name is required (--participant)")
	}

	seed := resolveSeed(seedFlag, cfg.Task.Seed)
	e := engine.New(engine.Config{
		Mode:   engine.Scored,
		Rand:   rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
		Logger: logger,
	})
	sess := store.Session{
		ID:          store.NewSessionID(),
		Participant: name,
		Mode:        engine.Scored.String(),
		Seed:        seed,
		StartedAt:   time.Now().UTC(),
	}
	logger.Info("session started",
		zap.String("session", sess.ID),
		zap.String("participant", name),
		zap.Int64("seed", seed),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Participant: %s\n", name)
	completed, err := runInteractive(cmd.InOrStdin(), out, e, time.Now)
	if err != nil {
		return err
	}
	sess.FinishedAt = time.Now().UTC()
	sess.Summary = e.Summary()

	fmt.Fprintln(out)
	printSummary(out, sess.Summary)

	if !cfg.Task.Persist {
		return nil
	}
	st, err := store.NewStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	if err := archive(st, sess, e.Entries(), completed); err != nil {
		return err
	}
	logger.Info("session archived", zap.String("session", sess.ID), zap.String("db", cfg.Database))
	fmt.Fprintf(out, "\nSaved session %s\n", sess.ID)
	return nil
}

func runPractice(cmd *cobra.Command, args []string) error {
	seed := resolveSeed(seedFlag, cfg.Task.Seed)
	e := engine.New(engine.Config{
		Mode:           engine.Practice,
		Rand:           rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
		PracticeTrials: cfg.Practice.Trials,
		Logger:         logger,
	})
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Practice session. Nothing is recorded.")
	if _, err := runInteractive(cmd.InOrStdin(), out, e, time.Now); err != nil {
		return err
	}
	s := e.Summary()
	fmt.Fprintf(out, "\nPractice finished: %d trials, %s correct\n", s.TotalTrials, s.AccuracyPercent())
	return nil
}

// resolveSeed prefers the flag, then the config, then a random seed.
func resolveSeed(flagSeed, cfgSeed int64) int64 {
	switch {
	case flagSeed != 0:
		return flagSeed
	case cfgSeed != 0:
		return cfgSeed
	}
	return rand.Int64N(1<<62) + 1
}

// #endregion run

// #region interactive
// runInteractive drives e from line input until it terminates. It reports
// false when the participant quits or input ends first.
func runInteractive(in io.Reader, out io.Writer, e *engine.Engine, now func() time.Time) (bool, error) {
	sc := bufio.NewScanner(in)
	printTemplates(out, e.Templates())

	for {
		stim, ok := e.Next()
		if !ok {
			return true, nil
		}
		fmt.Fprintf(out, "\nCard %d: %s\n", e.TrialsConsumed()+1, stim.Describe())
		shown := now()

		for {
			fmt.Fprint(out, "template (1-4, q to quit)> ")
			if !sc.Scan() {
				return false, sc.Err()
			}
			line := strings.TrimSpace(sc.Text())
			if line == "q" || line == "quit" {
				return false, nil
			}
			id, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintln(out, "enter a template number from 1 to 4")
				continue
			}
			res, err := e.Submit(id, now().Sub(shown))
			if errors.Is(err, engine.ErrUnknownTemplate) {
				fmt.Fprintln(out, "enter a template number from 1 to 4")
				continue
			}
			if err != nil {
				return false, err
			}
			printFeedback(out, e.Mode(), res)
			break
		}
	}
}

func printTemplates(out io.Writer, templates []card.Template) {
	fmt.Fprintln(out, "Templates:")
	for _, t := range templates {
		fmt.Fprintf(out, "  [%d] %s\n", t.ID, t.Describe())
	}
}

func printFeedback(out io.Writer, mode engine.Mode, res engine.Outcome) {
	if res.Record.Correct {
		fmt.Fprintln(out, "correct")
	} else {
		fmt.Fprintln(out, "incorrect")
	}
	// the scored rule stays hidden from the participant
	if mode == engine.Practice && res.RuleChanged {
		fmt.Fprintf(out, "The rule has changed! Now match by %s.\n", res.NewRule.Name())
	}
}

func printSummary(out io.Writer, s triallog.Summary) {
	fmt.Fprintf(out, "Total trials:             %d\n", s.TotalTrials)
	fmt.Fprintf(out, "Accuracy:                 %s\n", s.AccuracyPercent())
	fmt.Fprintf(out, "Perseverative errors:     %d\n", s.PerseverativeErrors)
	fmt.Fprintf(out, "Perseverative responses:  %d\n", s.PerseverativeResponses)
	fmt.Fprintf(out, "Categories completed:     %d\n", s.CategoriesCompleted)
}

// #endregion interactive

// #region archive
// archive validates the session, then saves it with its audit trail.
func archive(st *store.Store, sess store.Session, entries []triallog.Entry, completed bool) error {
	if res := eval.NewEvalHarness(eval.DefaultEvalConfig()).Run(entries, sess.Summary); !res.Passed {
		return fmt.Errorf("session %s not archived: %s", sess.ID, res.Reason)
	}
	if err := st.SaveSession(sess, entries); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	startJSON, _ := json.Marshal(map[string]interface{}{
		"participant": sess.Participant,
		"seed":        sess.Seed,
	})
	events := []logging.SessionEvent{{
		SessionID:  sess.ID,
		EventType:  logging.EventSessionStart,
		DetailJSON: string(startJSON),
		CreatedAt:  sess.StartedAt,
	}}

	lastTrial := 0
	for _, en := range entries {
		if !en.IsMarker() {
			lastTrial = en.Trial.Index
			continue
		}
		detail, _ := json.Marshal(logging.RuleChangeDetail{
			Trial:      lastTrial,
			NewRule:    en.Marker.Rule.String(),
			Categories: en.Marker.Categories,
		})
		events = append(events, logging.SessionEvent{
			SessionID:  sess.ID,
			EventType:  logging.EventRuleChange,
			DetailJSON: string(detail),
			CreatedAt:  sess.FinishedAt,
		})
	}

	endJSON, _ := json.Marshal(map[string]interface{}{
		"completed": completed,
		"summary":   sess.Summary,
	})
	events = append(events, logging.SessionEvent{
		SessionID:  sess.ID,
		EventType:  logging.EventSessionEnd,
		DetailJSON: string(endJSON),
		CreatedAt:  sess.FinishedAt,
	})

	for _, ev := range events {
		if err := logging.LogEvent(st.DB(), ev); err != nil {
			return err
		}
	}
	return nil
}

// #endregion archive
