package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/wcst/go-controller/internal/rule"
	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id              TEXT PRIMARY KEY,
	participant             TEXT NOT NULL,
	mode                    TEXT NOT NULL,
	seed                    INTEGER NOT NULL,
	started_at              TEXT NOT NULL,
	finished_at             TEXT,
	total_trials            INTEGER NOT NULL,
	correct                 INTEGER NOT NULL,
	perseverative_errors    INTEGER NOT NULL,
	perseverative_responses INTEGER NOT NULL,
	categories_completed    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trial_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	seq           INTEGER NOT NULL,
	kind          TEXT NOT NULL,
	trial         INTEGER,
	stimulus      TEXT,
	template_id   INTEGER,
	response      TEXT,
	correct       INTEGER,
	perseverative INTEGER,
	ambiguous     INTEGER,
	rule          TEXT NOT NULL,
	reaction_ms   INTEGER,
	categories    INTEGER,
	UNIQUE (session_id, seq),
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE TABLE IF NOT EXISTS session_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	event_type  TEXT NOT NULL,
	detail_json TEXT,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store archives finished sessions in SQLite for reporting and export.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// #region save-session
// SaveSession writes the session header and every log entry in one transaction.
func (s *Store) SaveSession(sess Session, entries []triallog.Entry) error {
	if sess.ID == "" {
		return fmt.Errorf("save session: empty session id")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var finished interface{}
	if !sess.FinishedAt.IsZero() {
		finished = sess.FinishedAt.UTC().Format(time.RFC3339Nano)
	}
	sum := sess.Summary
	_, err = tx.Exec(
		`INSERT INTO sessions (session_id, participant, mode, seed, started_at, finished_at,
		   total_trials, correct, perseverative_errors, perseverative_responses, categories_completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Participant, sess.Mode, sess.Seed,
		sess.StartedAt.UTC().Format(time.RFC3339Nano), finished,
		sum.TotalTrials, sum.Correct, sum.PerseverativeErrors, sum.PerseverativeResponses, sum.CategoriesCompleted,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO trial_log (session_id, seq, kind, trial, stimulus, template_id, response,
		   correct, perseverative, ambiguous, rule, reaction_ms, categories)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare trial insert: %w", err)
	}
	defer stmt.Close()

	for seq, e := range entries {
		if e.IsMarker() {
			_, err = stmt.Exec(sess.ID, seq, e.Kind.String(), nil, nil, nil, nil,
				nil, nil, nil, e.Marker.Rule.String(), nil, e.Marker.Categories)
		} else {
			r := e.Trial
			_, err = stmt.Exec(sess.ID, seq, e.Kind.String(), r.Index, r.Stimulus, r.TemplateID, r.Response.String(),
				r.Correct, r.Perseverative, r.Ambiguous, r.Rule.String(), r.ReactionMS, nil)
		}
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// #endregion save-session

// #region get-session
// GetSession retrieves a session header by ID.
func (s *Store) GetSession(id string) (Session, error) {
	row := s.db.QueryRow(
		`SELECT session_id, participant, mode, seed, started_at, finished_at,
		   total_trials, correct, perseverative_errors, perseverative_responses, categories_completed
		 FROM sessions WHERE session_id = ?`, id,
	)
	sess, err := scanSession(row)
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return sess, nil
}

// #endregion get-session

// #region list-sessions
// ListSessions returns the most recent sessions, newest first.
func (s *Store) ListSessions(limit int) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT session_id, participant, mode, seed, started_at, finished_at,
		   total_trials, correct, perseverative_errors, perseverative_responses, categories_completed
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// #endregion list-sessions

// #region load-entries
// LoadEntries reads a session's log back in its original order.
func (s *Store) LoadEntries(sessionID string) ([]triallog.Entry, error) {
	rows, err := s.db.Query(
		`SELECT kind, trial, stimulus, template_id, response, correct, perseverative, ambiguous,
		   rule, reaction_ms, categories
		 FROM trial_log WHERE session_id = ? ORDER BY seq ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	var entries []triallog.Entry
	for rows.Next() {
		var (
			kind, ruleTag                       string
			trial, templateID, reactionMS, cats sql.NullInt64
			stimulus, response                  sql.NullString
			correct, persev, ambiguous          sql.NullBool
		)
		if err := rows.Scan(&kind, &trial, &stimulus, &templateID, &response, &correct, &persev,
			&ambiguous, &ruleTag, &reactionMS, &cats); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r, err := rule.ParseDimension(ruleTag)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", len(entries), err)
		}

		if kind == triallog.KindMarker.String() {
			entries = append(entries, triallog.Entry{
				Kind:   triallog.KindMarker,
				Marker: triallog.Marker{Rule: r, Categories: int(cats.Int64)},
			})
			continue
		}
		resp, err := rule.ParseDimension(response.String)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", len(entries), err)
		}
		entries = append(entries, triallog.Entry{
			Kind: triallog.KindTrial,
			Trial: triallog.TrialRecord{
				Index:         int(trial.Int64),
				Stimulus:      stimulus.String,
				TemplateID:    int(templateID.Int64),
				Response:      resp,
				Correct:       correct.Bool,
				Perseverative: persev.Bool,
				Ambiguous:     ambiguous.Bool,
				Rule:          r,
				ReactionMS:    reactionMS.Int64,
			},
		})
	}
	return entries, rows.Err()
}

// #endregion load-entries

// #region helpers
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(sc scanner) (Session, error) {
	var sess Session
	var startedStr string
	var finishedStr sql.NullString
	err := sc.Scan(&sess.ID, &sess.Participant, &sess.Mode, &sess.Seed, &startedStr, &finishedStr,
		&sess.Summary.TotalTrials, &sess.Summary.Correct, &sess.Summary.PerseverativeErrors,
		&sess.Summary.PerseverativeResponses, &sess.Summary.CategoriesCompleted)
	if err != nil {
		return Session{}, err
	}
	sess.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	if finishedStr.Valid {
		sess.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedStr.String)
	}
	return sess, nil
}

// #endregion helpers
