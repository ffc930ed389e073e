package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/wcst/go-controller/internal/replay"
	"github.com/danielpatrickdp/wcst/go-controller/internal/store"
)

var (
	replayFixture string
	replaySession string
	exportOut     string
)

// replayCmd re-scores a recorded session
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Re-score a recorded session and compare with its stored scoring",
	Long: `Feeds the recorded stimuli and choices through a fresh engine and reports any
difference from the expected summary, perseverative trials and rule changes.

Examples:
  wcst replay --fixture internal/replay/testdata/perseveration_session.json
  wcst replay --db wcst.db --session 5f0c...`,
	RunE: runReplay,
}

// exportFixtureCmd writes an archived session as a replay fixture
var exportFixtureCmd = &cobra.Command{
	Use:   "export-fixture",
	Short: "Export an archived session as a replay fixture",
	RunE:  runExportFixture,
}

func init() {
	replayCmd.Flags().StringVar(&replayFixture, "fixture", "", "path to fixture JSON (fixture mode)")
	replayCmd.Flags().StringVar(&replaySession, "session", "", "archived session id (DB mode)")
	replayCmd.MarkFlagsMutuallyExclusive("fixture", "session")
	replayCmd.MarkFlagsOneRequired("fixture", "session")

	exportFixtureCmd.Flags().StringVar(&replaySession, "session", "", "archived session id")
	exportFixtureCmd.Flags().StringVar(&exportOut, "out", "", "output fixture JSON path")
	_ = exportFixtureCmd.MarkFlagRequired("session")
	_ = exportFixtureCmd.MarkFlagRequired("out")
}

// #region replay
func runReplay(cmd *cobra.Command, args []string) error {
	var f *replay.Fixture
	var err error
	if replayFixture != "" {
		f, err = replay.LoadFixture(replayFixture)
	} else {
		f, err = fixtureFromDB(cfg.Database, replaySession)
	}
	if err != nil {
		return err
	}

	res, err := replay.Replay(f, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.Description != "" {
		fmt.Fprintf(out, "%s\n\n", f.Description)
	}
	printSummary(out, res.Summary)
	if res.Unused > 0 {
		fmt.Fprintf(out, "\n%d responses after termination were ignored\n", res.Unused)
	}

	diffs := replay.Check(f, res)
	if len(diffs) == 0 {
		fmt.Fprintln(out, "\nreplay matches")
		return nil
	}
	fmt.Fprintln(out, "\nMISMATCH:")
	for _, d := range diffs {
		fmt.Fprintf(out, "  %s\n", d)
	}
	logger.Warn("replay mismatch", zap.Int("diffs", len(diffs)))
	return errors.New("replay does not match recorded scoring")
}

// #endregion replay

// #region export
func runExportFixture(cmd *cobra.Command, args []string) error {
	f, err := fixtureFromDB(cfg.Database, replaySession)
	if err != nil {
		return err
	}
	if err := f.Save(exportOut); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d trials to %s\n", len(f.Responses), exportOut)
	return nil
}

func fixtureFromDB(dbPath, sessionID string) (*replay.Fixture, error) {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	sess, err := st.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	entries, err := st.LoadEntries(sessionID)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("session %s (%s, %s)", sess.ID, sess.Participant, sess.StartedAt.Format("2006-01-02"))
	return replay.FromEntries(desc, entries, sess.Summary.CategoriesCompleted), nil
}

// #endregion export
