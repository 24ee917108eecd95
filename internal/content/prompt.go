package content

import (
	"fmt"
	"strings"
)

const lessonSystemPrompt = `You are a clear, engaging narrator recording a short educational audio lesson. Write text to be read aloud: short sentences, no headings, no bullet points, no stage directions.`

func buildLessonUserMessage(cfg SessionConfig, wordTarget int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", cfg.Topic))
	b.WriteString(fmt.Sprintf("Length: about %d words\n", wordTarget))

	if cfg.Complexity == ComplexityComplex {
		b.WriteString("Depth: thorough. Cover the underlying mechanism, one concrete example, and one common misconception.\n")
	} else {
		b.WriteString("Depth: introductory. Stick to the core idea and one concrete example.\n")
	}

	b.WriteString(`
Instructions:
Write the narration script for this lesson. The listener cannot see anything, so describe everything in words. Do not reference figures, slides, or the listener's screen. End with a one-sentence summary of the key idea.`)

	return b.String()
}

const quizSystemPrompt = `You write comprehension checks for audio lessons. Questions must be answerable from the script alone.`

func buildQuizUserMessage(script string, numQuestions, numOptions int) string {
	var b strings.Builder

	b.WriteString("Lesson script:\n")
	b.WriteString(script)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf(`Instructions:
Write %d multiple-choice questions about this script, each with exactly %d options and one correct answer. Distractors must be plausible but clearly wrong given the script. Vary the position of the correct option.`, numQuestions, numOptions))

	return b.String()
}
