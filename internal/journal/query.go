package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionSummary is one row of the session history listing.
type SessionSummary struct {
	SessionID    string
	StartedAt    time.Time
	Topic        string
	Complexity   string
	Pacing       string
	Outcome      string
	QuizScore    int
	QuizTotal    int
	DurationSecs int
}

// RecentSessions lists the most recent sessions, newest first. Sessions
// never finalized (crash, kill) show an empty outcome.
func (s *SQLite) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, started_at, topic, complexity, pacing,
		        COALESCE(outcome, ''), COALESCE(quiz_score, 0),
		        COALESCE(quiz_total, 0), COALESCE(duration_secs, 0)
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.SessionID, &sum.StartedAt, &sum.Topic, &sum.Complexity,
			&sum.Pacing, &sum.Outcome, &sum.QuizScore, &sum.QuizTotal, &sum.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// InterruptionSummary is one recorded interruption of a session.
type InterruptionSummary struct {
	Timestamp  time.Time
	Transcript string
	Answer     string
	Outcome    string
	PositionMs int64
}

// SessionInterruptions lists the interruptions of one session in order.
func (s *SQLite) SessionInterruptions(ctx context.Context, sessionID string) ([]InterruptionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, transcript, answer, outcome, position_ms
		 FROM interruptions
		 WHERE session_id = ?
		 ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query interruptions: %w", err)
	}
	defer rows.Close()

	var out []InterruptionSummary
	for rows.Next() {
		var in InterruptionSummary
		if err := rows.Scan(&in.Timestamp, &in.Transcript, &in.Answer, &in.Outcome, &in.PositionMs); err != nil {
			return nil, fmt.Errorf("scan interruption: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// UsageRow aggregates generation service usage for one purpose.
type UsageRow struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByPurpose aggregates recorded generation calls by purpose.
func (s *SQLite) LLMUsageByPurpose(ctx context.Context) ([]UsageRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens),
		        CAST(AVG(latency_ms) AS INTEGER)
		 FROM llm_requests
		 GROUP BY purpose
		 ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var u UsageRow
		var in, outTok, avg sql.NullInt64
		if err := rows.Scan(&u.Purpose, &u.Calls, &in, &outTok, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.InputTokens = int(in.Int64)
		u.OutputTokens = int(outTok.Int64)
		u.AvgLatencyMs = avg.Int64
		out = append(out, u)
	}
	return out, rows.Err()
}
