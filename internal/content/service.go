package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/lektor/internal/llm"
)

// ErrGeneration indicates lesson or quiz generation failed.
type ErrGeneration struct {
	Stage string // "lesson" or "quiz"
	Err   error
}

func (e *ErrGeneration) Error() string {
	return fmt.Sprintf("%s generation: %v", e.Stage, e.Err)
}

func (e *ErrGeneration) Unwrap() error { return e.Err }

// Service generates lesson scripts and quizzes through an llm.Provider.
type Service struct {
	provider llm.Provider
	cfg      GenConfig
}

// NewService creates a content generation service.
func NewService(provider llm.Provider, cfg GenConfig) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Config returns the generation settings in effect.
func (s *Service) Config() GenConfig {
	return s.cfg
}

type lessonOutput struct {
	Script string `json:"script"`
}

// GenerateLesson produces the narration script for the configured topic.
func (s *Service) GenerateLesson(ctx context.Context, cfg SessionConfig) (string, error) {
	ctx = llm.WithPurpose(ctx, "lesson")

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(cfg, s.cfg.WordTarget(cfg.Complexity))},
		},
		Schema:      LessonSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", &ErrGeneration{Stage: "lesson", Err: err}
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", &ErrGeneration{Stage: "lesson", Err: fmt.Errorf("parse response: %w", err)}
	}
	if out.Script == "" {
		return "", &ErrGeneration{Stage: "lesson", Err: fmt.Errorf("empty script")}
	}

	return out.Script, nil
}

type quizOutput struct {
	Questions []quizQuestionOutput `json:"questions"`
}

type quizQuestionOutput struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// GenerateQuiz produces comprehension questions for a script. An empty
// question list is a valid result.
func (s *Service) GenerateQuiz(ctx context.Context, script string) ([]QuizQuestion, error) {
	ctx = llm.WithPurpose(ctx, "quiz")

	req := llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizUserMessage(script, s.cfg.QuizQuestions, s.cfg.QuizOptions)},
		},
		Schema:      QuizSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, &ErrGeneration{Stage: "quiz", Err: err}
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ErrGeneration{Stage: "quiz", Err: fmt.Errorf("parse response: %w", err)}
	}

	questions := make([]QuizQuestion, 0, len(out.Questions))
	for i, q := range out.Questions {
		if len(q.Options) == 0 || q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, &ErrGeneration{
				Stage: "quiz",
				Err:   fmt.Errorf("question %d: correct index %d out of range for %d options", i, q.CorrectIndex, len(q.Options)),
			}
		}
		questions = append(questions, QuizQuestion{
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}

	return questions, nil
}
