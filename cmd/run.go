package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lektor/internal/app"
	"github.com/abhisek/lektor/internal/audio"
	"github.com/abhisek/lektor/internal/capture"
	"github.com/abhisek/lektor/internal/content"
	"github.com/abhisek/lektor/internal/journal"
	"github.com/abhisek/lektor/internal/llm"
	"github.com/abhisek/lektor/internal/session"
	"github.com/abhisek/lektor/internal/speech"
)

// runLesson opens the journal, builds the session collaborators, and
// launches the TUI.
func runLesson(cmd *cobra.Command, topic string) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve journal path: %w", err)
	}
	rec, err := journal.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer rec.Close()

	provider, err := llm.NewProviderFromEnv(ctx, rec)
	if err != nil {
		return fmt.Errorf("configure generation provider: %w", err)
	}

	llmCfg := llm.ConfigFromEnv()
	if llmCfg.Gemini.APIKey == "" {
		return fmt.Errorf("speech requires a Gemini key: set LEKTOR_GEMINI_API_KEY or GEMINI_API_KEY")
	}
	gs, err := speech.NewGeminiSpeech(ctx, llmCfg.Gemini.APIKey)
	if err != nil {
		return fmt.Errorf("configure speech service: %w", err)
	}

	var recorder capture.Recorder
	if r, ok := capture.LookupExecRecorder(); ok {
		recorder = r
	} else {
		fmt.Fprintln(os.Stderr, "No recording tool found (arecord); spoken questions disabled.")
		recorder = &capture.MockRecorder{StartErr: &capture.ErrCapture{Err: fmt.Errorf("no recording tool")}}
	}

	var sink audio.Sink = audio.NullSink{}
	mute, _ := cmd.Flags().GetBool("mute")
	if !mute {
		if s, ok := audio.LookupExecSink(); ok {
			sink = s
		} else {
			fmt.Fprintln(os.Stderr, "No playback tool found (ffplay); running silent.")
		}
	}

	complexityFlag, _ := cmd.Flags().GetString("complexity")
	pacingFlag, _ := cmd.Flags().GetString("pacing")

	newMachine := func(topic string) (*session.Machine, error) {
		return session.New(session.Options{
			Config: content.SessionConfig{
				Topic:      topic,
				Complexity: content.Complexity(strings.ToUpper(complexityFlag)),
				Pacing:     content.Pacing(strings.ToUpper(pacingFlag)),
			},
			Content:  content.NewService(provider, content.DefaultGenConfig()),
			Synth:    gs,
			Answerer: gs,
			Recorder: recorder,
			Journal:  rec,
			Sink:     sink,
		})
	}

	return app.Run(app.Options{NewMachine: newMachine, Topic: topic})
}
