package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/lektor/internal/journal"
)

// LoggingProvider records every generation call in the session journal.
type LoggingProvider struct {
	inner   Provider
	journal journal.Recorder
}

// WithLogging wraps a Provider with journal recording.
func WithLogging(p Provider, rec journal.Recorder) Provider {
	return &LoggingProvider{inner: p, journal: rec}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := journal.LLMRequestData{
		SessionID: SessionFrom(ctx),
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Journaling is best-effort; never fail the request over it.
	if logErr := l.journal.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to journal llm request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
