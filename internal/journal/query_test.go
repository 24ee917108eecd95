package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecentSessionsNewestFirst(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Start(ctx, SessionStartData{SessionID: "s-1", Topic: "tides", Complexity: "SIMPLE", Pacing: "NORMAL"}))
	require.NoError(t, j.Finalize(ctx, FinalizeData{SessionID: "s-1", Outcome: "finished", QuizScore: 2, QuizTotal: 3, DurationSecs: 80}))
	require.NoError(t, j.Start(ctx, SessionStartData{SessionID: "s-2", Topic: "volcanoes", Complexity: "COMPLEX", Pacing: "FAST"}))

	sessions, err := j.RecentSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// s-2 was never finalized, so it reports an empty outcome.
	require.Equal(t, "volcanoes", sessions[0].Topic)
	require.Equal(t, "", sessions[0].Outcome)

	require.Equal(t, SessionSummary{
		SessionID:    "s-1",
		StartedAt:    sessions[1].StartedAt,
		Topic:        "tides",
		Complexity:   "SIMPLE",
		Pacing:       "NORMAL",
		Outcome:      "finished",
		QuizScore:    2,
		QuizTotal:    3,
		DurationSecs: 80,
	}, sessions[1])
}

func TestSessionInterruptionsInOrder(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Start(ctx, SessionStartData{SessionID: "s-1", Topic: "tides", Complexity: "SIMPLE", Pacing: "NORMAL"}))
	require.NoError(t, j.AppendInterruption(ctx, InterruptionData{SessionID: "s-1", Transcript: "why two tides?", Answer: "the moon", Outcome: "answered", PositionMs: 9000}))
	require.NoError(t, j.AppendInterruption(ctx, InterruptionData{SessionID: "s-1", Outcome: "capture-failed", PositionMs: 21000}))
	require.NoError(t, j.AppendInterruption(ctx, InterruptionData{SessionID: "other", Transcript: "unrelated", Outcome: "answered"}))

	interruptions, err := j.SessionInterruptions(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, interruptions, 2)
	require.Equal(t, "why two tides?", interruptions[0].Transcript)
	require.Equal(t, int64(9000), interruptions[0].PositionMs)
	require.Equal(t, "capture-failed", interruptions[1].Outcome)
}

func TestLLMUsageByPurposeAggregates(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, j.AppendLLMRequest(ctx, LLMRequestData{
			SessionID: "s-1", Provider: "gemini", Model: "gemini-flash",
			Purpose: "lesson", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true,
		}))
	}
	require.NoError(t, j.AppendLLMRequest(ctx, LLMRequestData{
		SessionID: "s-1", Provider: "gemini", Model: "gemini-flash",
		Purpose: "quiz", InputTokens: 50, OutputTokens: 120, LatencyMs: 300, Success: true,
	}))

	usage, err := j.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)

	require.Equal(t, "lesson", usage[0].Purpose)
	require.Equal(t, 3, usage[0].Calls)
	require.Equal(t, 300, usage[0].InputTokens)
	require.Equal(t, 1200, usage[0].OutputTokens)
	require.Equal(t, int64(900), usage[0].AvgLatencyMs)

	require.Equal(t, "quiz", usage[1].Purpose)
	require.Equal(t, 1, usage[1].Calls)
}
