// Package capture defines the microphone recording contract. The session
// core only ever starts a capture and stops it to collect the bytes; device
// mechanics live behind the Recorder interface.
package capture

import (
	"context"
	"fmt"
)

// Recorder captures one recording at a time. Start begins capture; Stop
// finalizes it and returns the encoded bytes. Discard throws away an
// in-flight capture without reading it.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() ([]byte, error)
	Discard()

	// MIME reports the encoding of the bytes Stop returns.
	MIME() string
}

// ErrCapture indicates the recording device could not start or deliver.
type ErrCapture struct {
	Err error
}

func (e *ErrCapture) Error() string {
	return fmt.Sprintf("capture: %v", e.Err)
}

func (e *ErrCapture) Unwrap() error { return e.Err }
