package session

import (
	"testing"

	"github.com/abhisek/lektor/internal/content"
)

func threeQuestions() []content.QuizQuestion {
	return []content.QuizQuestion{
		{Prompt: "q0", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{Prompt: "q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
		{Prompt: "q2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
	}
}

// checkScoreInvariant recomputes the score from the recorded answers and
// compares it with the running score.
func checkScoreInvariant(t *testing.T, q *QuizFlow, questions []content.QuizQuestion) {
	t.Helper()
	want := 0
	for i, a := range q.Answers() {
		if a != Skipped && a == questions[i].CorrectIndex {
			want++
		}
	}
	if got := q.Score(); got != want {
		t.Fatalf("score = %d, recomputed from answers = %d", got, want)
	}
}

func TestQuizFlowScenario(t *testing.T) {
	questions := threeQuestions()
	q := NewQuizFlow(questions)

	if _, err := q.Answer(1); err != nil {
		t.Fatalf("answer(1): %v", err)
	}
	if _, err := q.Answer(0); err != nil {
		t.Fatalf("answer(0): %v", err)
	}
	q.Previous()

	if got := q.Index(); got != 1 {
		t.Errorf("index after previous = %d, want 1", got)
	}
	if got := q.Score(); got != 1 {
		t.Errorf("score after previous = %d, want 1", got)
	}
	if got := q.Answers(); len(got) != 1 || got[0] != 1 {
		t.Errorf("answers after previous = %v, want [1]", got)
	}

	// Redoing and undoing the same answer must land on the same state:
	// previous exactly inverts whatever the forward step did.
	if _, err := q.Answer(0); err != nil {
		t.Fatalf("redo answer(0): %v", err)
	}
	q.Previous()
	if q.Index() != 1 || q.Score() != 1 {
		t.Fatalf("redo/undo changed state: index=%d score=%d", q.Index(), q.Score())
	}
	checkScoreInvariant(t, q, questions)

	if done, err := q.Skip(); err != nil || done {
		t.Fatalf("skip: done=%v err=%v", done, err)
	}
	done, err := q.Answer(2)
	if err != nil {
		t.Fatalf("answer(2): %v", err)
	}
	if !done {
		t.Error("quiz not done after last answer")
	}
	if got := q.Index(); got != 3 {
		t.Errorf("final index = %d, want 3", got)
	}
	if got := q.Answers(); len(got) != 3 || got[0] != 1 || got[1] != Skipped || got[2] != 2 {
		t.Errorf("final answers = %v, want [1 -1 2]", got)
	}
	if got := q.Score(); got != 2 {
		t.Errorf("final score = %d, want 2", got)
	}
	checkScoreInvariant(t, q, questions)
}

func TestQuizFlowInvariantAcrossSequence(t *testing.T) {
	questions := threeQuestions()
	q := NewQuizFlow(questions)

	steps := []func(){
		func() { q.Answer(3) },
		func() { q.Previous() },
		func() { q.Skip() },
		func() { q.Answer(0) },
		func() { q.Previous() },
		func() { q.Previous() },
		func() { q.Answer(1) },
		func() { q.Answer(2) },
	}
	for i, step := range steps {
		step()
		checkScoreInvariant(t, q, questions)
		if idx := q.Index(); idx < 0 || idx > len(questions) {
			t.Fatalf("step %d: index %d out of range", i, idx)
		}
	}
}

func TestQuizFlowPreviousAtStartIsNoop(t *testing.T) {
	q := NewQuizFlow(threeQuestions())
	q.Previous()
	if q.Index() != 0 || q.Score() != 0 || len(q.Answers()) != 0 {
		t.Fatalf("previous at start mutated state: index=%d score=%d answers=%v",
			q.Index(), q.Score(), q.Answers())
	}
}

func TestQuizFlowRejectsOutOfRangeOption(t *testing.T) {
	q := NewQuizFlow(threeQuestions())
	if _, err := q.Answer(4); err == nil {
		t.Fatal("expected error for out-of-range option")
	}
	if _, err := q.Answer(-1); err == nil {
		t.Fatal("expected error for negative option")
	}
	if q.Index() != 0 || q.Score() != 0 {
		t.Fatalf("rejected answer mutated state: index=%d score=%d", q.Index(), q.Score())
	}
}

func TestQuizFlowRejectsStepsAfterDone(t *testing.T) {
	q := NewQuizFlow(threeQuestions())
	q.Skip()
	q.Skip()
	q.Skip()
	if !q.Done() {
		t.Fatal("quiz should be done after skipping every question")
	}
	if _, err := q.Answer(0); err == nil {
		t.Error("answer after done should fail")
	}
	if _, err := q.Skip(); err == nil {
		t.Error("skip after done should fail")
	}
	if q.Score() != 0 {
		t.Errorf("skips scored: %d", q.Score())
	}
}

func TestQuizFlowEmptyIsImmediatelyDone(t *testing.T) {
	q := NewQuizFlow(nil)
	if !q.Done() {
		t.Fatal("empty quiz should start done")
	}
	if _, ok := q.Current(); ok {
		t.Fatal("empty quiz has no current question")
	}
}
