package session

import (
	"fmt"

	"github.com/abhisek/lektor/internal/content"
)

// Skipped marks a question the learner passed on without choosing an option.
const Skipped = -1

// QuizFlow walks a fixed question list one question at a time. Answering a
// correct option adds a point, skipping records the Skipped sentinel, and
// stepping back removes the last record and exactly reverses its score
// contribution, so revisiting a question can never double-count.
type QuizFlow struct {
	questions []content.QuizQuestion
	answers   []int
	score     int
}

func NewQuizFlow(questions []content.QuizQuestion) *QuizFlow {
	return &QuizFlow{questions: questions}
}

// Index is the position of the current question. It equals the number of
// recorded answers, so the current question is always unanswered.
func (q *QuizFlow) Index() int { return len(q.answers) }

func (q *QuizFlow) Len() int { return len(q.questions) }

// Done reports whether every question has been answered or skipped.
func (q *QuizFlow) Done() bool { return len(q.answers) >= len(q.questions) }

// Current returns the question awaiting an answer, or false when the flow
// is complete.
func (q *QuizFlow) Current() (content.QuizQuestion, bool) {
	if q.Done() {
		return content.QuizQuestion{}, false
	}
	return q.questions[len(q.answers)], true
}

func (q *QuizFlow) Score() int { return q.score }

// Answers returns a copy of the per-question record, Skipped where the
// learner passed.
func (q *QuizFlow) Answers() []int {
	out := make([]int, len(q.answers))
	copy(out, q.answers)
	return out
}

// Answer records option for the current question and reports whether the
// flow is now complete.
func (q *QuizFlow) Answer(option int) (done bool, err error) {
	cur, ok := q.Current()
	if !ok {
		return true, fmt.Errorf("quiz already complete")
	}
	if option < 0 || option >= len(cur.Options) {
		return false, fmt.Errorf("option %d out of range for %d choices", option, len(cur.Options))
	}
	q.answers = append(q.answers, option)
	if option == cur.CorrectIndex {
		q.score++
	}
	return q.Done(), nil
}

// Skip records the current question as passed with no score change.
func (q *QuizFlow) Skip() (done bool, err error) {
	if q.Done() {
		return true, fmt.Errorf("quiz already complete")
	}
	q.answers = append(q.answers, Skipped)
	return q.Done(), nil
}

// Previous removes the most recent answer and undoes its score effect.
// At the first question it is a no-op.
func (q *QuizFlow) Previous() {
	if len(q.answers) == 0 {
		return
	}
	last := q.answers[len(q.answers)-1]
	q.answers = q.answers[:len(q.answers)-1]
	if last != Skipped && last == q.questions[len(q.answers)].CorrectIndex {
		q.score--
	}
}
