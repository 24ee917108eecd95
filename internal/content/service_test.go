package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/lektor/internal/llm"
)

func testConfig() SessionConfig {
	return SessionConfig{Topic: "photosynthesis", Complexity: ComplexitySimple, Pacing: PacingNormal}
}

func TestGenerateLesson(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"script":"Plants turn light into sugar."}`),
	})
	svc := NewService(mock, DefaultGenConfig())

	script, err := svc.GenerateLesson(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("GenerateLesson failed: %v", err)
	}
	if script != "Plants turn light into sugar." {
		t.Errorf("script = %q", script)
	}

	req := mock.Calls[0]
	if req.Schema != LessonSchema {
		t.Error("lesson request missing schema")
	}
	if !strings.Contains(req.Messages[0].Content, "photosynthesis") {
		t.Error("prompt does not mention the topic")
	}
	if !strings.Contains(req.Messages[0].Content, "180 words") {
		t.Errorf("prompt does not carry the SIMPLE word target: %q", req.Messages[0].Content)
	}
}

func TestGenerateLessonComplexWordTarget(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"script":"ok"}`),
	})
	svc := NewService(mock, DefaultGenConfig())

	cfg := testConfig()
	cfg.Complexity = ComplexityComplex
	if _, err := svc.GenerateLesson(context.Background(), cfg); err != nil {
		t.Fatalf("GenerateLesson failed: %v", err)
	}

	if !strings.Contains(mock.Calls[0].Messages[0].Content, "340 words") {
		t.Error("prompt does not carry the COMPLEX word target")
	}
}

func TestGenerateLessonProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := NewService(mock, DefaultGenConfig())

	_, err := svc.GenerateLesson(context.Background(), testConfig())
	var genErr *ErrGeneration
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want *ErrGeneration", err)
	}
	if genErr.Stage != "lesson" {
		t.Errorf("Stage = %q, want lesson", genErr.Stage)
	}
}

func TestGenerateQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"questions":[
			{"prompt":"What do plants produce?","options":["Sugar","Salt","Iron","Sand"],"correct_index":0},
			{"prompt":"What drives the process?","options":["Wind","Light","Sound","Heat"],"correct_index":1}
		]}`),
	})
	svc := NewService(mock, DefaultGenConfig())

	quiz, err := svc.GenerateQuiz(context.Background(), "script")
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if len(quiz) != 2 {
		t.Fatalf("len(quiz) = %d, want 2", len(quiz))
	}
	if quiz[1].CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", quiz[1].CorrectIndex)
	}
}

func TestGenerateQuizEmptyListIsValid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"questions":[]}`),
	})
	svc := NewService(mock, DefaultGenConfig())

	quiz, err := svc.GenerateQuiz(context.Background(), "script")
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if len(quiz) != 0 {
		t.Errorf("len(quiz) = %d, want 0", len(quiz))
	}
}

func TestGenerateQuizRejectsOutOfRangeIndex(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"questions":[
			{"prompt":"q","options":["a","b"],"correct_index":5}
		]}`),
	})
	svc := NewService(mock, DefaultGenConfig())

	_, err := svc.GenerateQuiz(context.Background(), "script")
	var genErr *ErrGeneration
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want *ErrGeneration", err)
	}
}

func TestSessionConfigValidate(t *testing.T) {
	if err := testConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := []SessionConfig{
		{Topic: "", Complexity: ComplexitySimple, Pacing: PacingNormal},
		{Topic: "x", Complexity: "DEEP", Pacing: PacingNormal},
		{Topic: "x", Complexity: ComplexitySimple, Pacing: "SLOW"},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: invalid config accepted", i)
		}
	}
}

func TestWorkloadRatingClamp(t *testing.T) {
	r := WorkloadRating{MentalDemand: -5, Performance: 150, Effort: 50, Frustration: 100}.Clamp()
	want := WorkloadRating{MentalDemand: 0, Performance: 100, Effort: 50, Frustration: 100}
	if r != want {
		t.Errorf("Clamp = %+v, want %+v", r, want)
	}
}
