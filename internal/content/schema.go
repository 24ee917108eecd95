package content

import "github.com/abhisek/lektor/internal/llm"

// LessonSchema defines the JSON schema for lesson script generation.
var LessonSchema = &llm.Schema{
	Name:        "lesson-script",
	Description: "A narrated explanation script for a guided audio lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"script": map[string]any{
				"type":        "string",
				"description": "The full narration text, written to be read aloud",
			},
		},
		"required":             []any{"script"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "lesson-quiz",
	Description: "Multiple-choice comprehension questions about a lesson script",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Answer options in display order",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
					},
					"required":             []any{"prompt", "options", "correct_index"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
