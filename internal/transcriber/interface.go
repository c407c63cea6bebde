// Package transcriber turns a folder of audio fragments into one transcript.
package transcriber

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Transcriber transcribes every fragment in a folder, in filename order.
type Transcriber interface {
	// Transcribe writes the transcript to outputPath and returns it.
	// It returns "" and a nil error when there is nothing to transcribe or nothing was understood.
	Transcribe(ctx context.Context, fragmentsDir, outputPath string) (string, error)
}

// Recognizer is one speech-to-text backend.
type Recognizer interface {
	Recognize(ctx context.Context, audio Audio, language string) (string, error)
	Name() string
}

// Audio is a loaded fragment.
type Audio struct {
	Path       string
	Data       []byte
	SampleRate int
	Duration   time.Duration
}

// ErrUnintelligible means the backend got the audio but recognized no speech.
var ErrUnintelligible = errors.New("could not understand the audio")

// RequestError means the speech service could not be reached or rejected the request.
type RequestError struct {
	Backend string
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Backend, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
