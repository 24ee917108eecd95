package speech

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

const (
	// ttsModel is the Gemini speech generation model. It returns raw PCM16.
	ttsModel = "gemini-2.5-flash-preview-tts"

	// answerModel is the audio-understanding model used for spoken questions.
	answerModel = "gemini-2.0-flash"

	// ttsSampleRate and ttsChannels are the fixed output format of the TTS
	// model (24 kHz mono PCM16).
	ttsSampleRate = 24000
	ttsChannels   = 1

	defaultVoice = "Kore"
)

// GeminiSpeech implements Synthesizer and Answerer against the Gemini API.
type GeminiSpeech struct {
	client *genai.Client
	voice  string
}

var (
	_ Synthesizer = (*GeminiSpeech)(nil)
	_ Answerer    = (*GeminiSpeech)(nil)
)

// NewGeminiSpeech creates a speech service backed by the Gemini API.
func NewGeminiSpeech(ctx context.Context, apiKey string) (*GeminiSpeech, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiSpeech{client: client, voice: defaultVoice}, nil
}

// Synthesize renders text as narration audio.
func (g *GeminiSpeech) Synthesize(ctx context.Context, text string) (*Clip, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: text}}},
	}

	result, err := g.client.Models.GenerateContent(ctx, ttsModel, contents, config)
	if err != nil {
		return nil, &ErrSynthesis{Err: err}
	}

	data := extractInlineAudio(result)
	if len(data) == 0 {
		return nil, &ErrSynthesis{Err: fmt.Errorf("no audio in response")}
	}

	return &Clip{
		Data:       data,
		SampleRate: ttsSampleRate,
		Channels:   ttsChannels,
	}, nil
}

const answerSystemPrompt = `A listener paused an audio lesson to ask a spoken question. Transcribe the question, then answer it in 2-4 sentences grounded in the lesson script. The answer will be read aloud, so write plain spoken prose.`

type answerOutput struct {
	Transcript string `json:"transcript"`
	Answer     string `json:"answer"`
}

// Answer transcribes and answers a recorded spoken question about the script.
func (g *GeminiSpeech) Answer(ctx context.Context, script string, audio RecordedAudio) (*AnswerResult, error) {
	if len(audio.Data) == 0 {
		return nil, &ErrAnswer{Err: fmt.Errorf("empty recording")}
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: answerSystemPrompt}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"transcript": {Type: genai.TypeString},
				"answer":     {Type: genai.TypeString},
			},
			Required: []string{"transcript", "answer"},
		},
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: "Lesson script:\n" + script},
				{InlineData: &genai.Blob{Data: audio.Data, MIMEType: audio.MIME}},
			},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, answerModel, contents, config)
	if err != nil {
		return nil, &ErrAnswer{Err: err}
	}

	var out answerOutput
	if err := json.Unmarshal([]byte(result.Text()), &out); err != nil {
		return nil, &ErrAnswer{Err: fmt.Errorf("parse response: %w", err)}
	}
	if out.Answer == "" {
		return nil, &ErrAnswer{Err: fmt.Errorf("empty answer")}
	}

	return &AnswerResult{Transcript: out.Transcript, Answer: out.Answer}, nil
}

func extractInlineAudio(result *genai.GenerateContentResponse) []byte {
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
