package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLite is a Recorder backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

var _ Recorder = (*SQLite)(nil)

// Open connects to the SQLite database at dsn, applies pragmas, and creates
// the journal tables if they do not exist.
func Open(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user append workloads.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			finalized_at TIMESTAMP,
			topic TEXT NOT NULL,
			complexity TEXT NOT NULL,
			pacing TEXT NOT NULL,
			outcome TEXT,
			quiz_score INTEGER,
			quiz_total INTEGER,
			duration_secs INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS state_changes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TIMESTAMP NOT NULL,
			session_id TEXT NOT NULL,
			from_state TEXT NOT NULL,
			to_state TEXT NOT NULL,
			trigger TEXT NOT NULL,
			position_ms INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS interruptions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TIMESTAMP NOT NULL,
			session_id TEXT NOT NULL,
			transcript TEXT NOT NULL,
			answer TEXT NOT NULL,
			outcome TEXT NOT NULL,
			position_ms INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TIMESTAMP NOT NULL,
			session_id TEXT NOT NULL,
			question_index INTEGER NOT NULL,
			selected_index INTEGER NOT NULL,
			correct_index INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			undone INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TIMESTAMP NOT NULL,
			session_id TEXT NOT NULL,
			mental_demand INTEGER NOT NULL,
			performance INTEGER NOT NULL,
			effort INTEGER NOT NULL,
			frustration INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS llm_requests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TIMESTAMP NOT NULL,
			session_id TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL,
			output_tokens INTEGER NOT NULL,
			latency_ms INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Start(ctx context.Context, data SessionStartData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, started_at, topic, complexity, pacing)
		 VALUES (?, ?, ?, ?, ?)`,
		data.SessionID, time.Now().UTC(), data.Topic, data.Complexity, data.Pacing)
	if err != nil {
		return fmt.Errorf("start session record: %w", err)
	}
	return nil
}

func (s *SQLite) AppendStateChange(ctx context.Context, data StateChangeData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state_changes (timestamp, session_id, from_state, to_state, trigger, position_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.SessionID, data.From, data.To, data.Trigger, data.PositionMs)
	if err != nil {
		return fmt.Errorf("append state change: %w", err)
	}
	return nil
}

func (s *SQLite) AppendInterruption(ctx context.Context, data InterruptionData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interruptions (timestamp, session_id, transcript, answer, outcome, position_ms, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.SessionID, data.Transcript, data.Answer, data.Outcome,
		data.PositionMs, data.DurationMs)
	if err != nil {
		return fmt.Errorf("append interruption: %w", err)
	}
	return nil
}

func (s *SQLite) AppendQuizAnswer(ctx context.Context, data QuizAnswerData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_answers (timestamp, session_id, question_index, selected_index, correct_index, correct, skipped, undone)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.SessionID, data.QuestionIndex, data.SelectedIndex,
		data.CorrectIndex, data.Correct, data.Skipped, data.Undone)
	if err != nil {
		return fmt.Errorf("append quiz answer: %w", err)
	}
	return nil
}

func (s *SQLite) AppendRating(ctx context.Context, data RatingData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ratings (timestamp, session_id, mental_demand, performance, effort, frustration)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.SessionID, data.MentalDemand, data.Performance,
		data.Effort, data.Frustration)
	if err != nil {
		return fmt.Errorf("append rating: %w", err)
	}
	return nil
}

func (s *SQLite) AppendLLMRequest(ctx context.Context, data LLMRequestData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests (timestamp, session_id, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.SessionID, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage)
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

func (s *SQLite) Finalize(ctx context.Context, data FinalizeData) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions
		 SET finalized_at = ?, outcome = ?, quiz_score = ?, quiz_total = ?, duration_secs = ?
		 WHERE session_id = ?`,
		time.Now().UTC(), data.Outcome, data.QuizScore, data.QuizTotal,
		data.DurationSecs, data.SessionID)
	if err != nil {
		return fmt.Errorf("finalize session record: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LEKTOR_DB environment variable
// 2. $XDG_DATA_HOME/lektor/lektor.db
// 3. ~/.local/share/lektor/lektor.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LEKTOR_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lektor", "lektor.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
