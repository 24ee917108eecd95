package app

import (
	"time"

	"github.com/abhisek/lektor/internal/content"
	"github.com/abhisek/lektor/internal/session"
)

// modeChangedMsg is sent whenever the session recomputes its presentation
// mode.
type modeChangedMsg struct {
	Mode session.Mode
}

// sessionFinishedMsg carries the final result when the session completes.
type sessionFinishedMsg struct {
	Result content.SessionResult
}

// startFailedMsg is sent when the session cannot even begin loading.
type startFailedMsg struct {
	Err error
}

// frameTickMsg drives the position/spectrum polling loop.
type frameTickMsg time.Time
