package journal

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *SQLite {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSessionLifecycleRoundTrip(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	err := j.Start(ctx, SessionStartData{
		SessionID:  "s-1",
		Topic:      "photosynthesis",
		Complexity: "SIMPLE",
		Pacing:     "NORMAL",
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	appends := []error{
		j.AppendStateChange(ctx, StateChangeData{SessionID: "s-1", From: "LOADING", To: "PLAYING", Trigger: "content ready"}),
		j.AppendInterruption(ctx, InterruptionData{SessionID: "s-1", Transcript: "what is chlorophyll?", Answer: "a pigment", Outcome: "answered", PositionMs: 12000}),
		j.AppendQuizAnswer(ctx, QuizAnswerData{SessionID: "s-1", QuestionIndex: 0, SelectedIndex: 1, CorrectIndex: 1, Correct: true}),
		j.AppendRating(ctx, RatingData{SessionID: "s-1", MentalDemand: 40, Performance: 80, Effort: 35, Frustration: 10}),
		j.AppendLLMRequest(ctx, LLMRequestData{SessionID: "s-1", Provider: "mock", Model: "mock", Purpose: "lesson", Success: true}),
	}
	for i, err := range appends {
		if err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	if err := j.Finalize(ctx, FinalizeData{SessionID: "s-1", Outcome: "finished", QuizScore: 1, QuizTotal: 3, DurationSecs: 95}); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	var outcome string
	var score int
	row := j.db.QueryRow(`SELECT outcome, quiz_score FROM sessions WHERE session_id = ?`, "s-1")
	if err := row.Scan(&outcome, &score); err != nil {
		t.Fatalf("read back session: %v", err)
	}
	if outcome != "finished" || score != 1 {
		t.Errorf("session record = (%q, %d), want (finished, 1)", outcome, score)
	}

	var changes int
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM state_changes`).Scan(&changes); err != nil {
		t.Fatalf("count state changes: %v", err)
	}
	if changes != 1 {
		t.Errorf("state_changes count = %d, want 1", changes)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "journal.db")
	j1, err := Open(dsn)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	j1.Close()

	j2, err := Open(dsn)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	j2.Close()
}
