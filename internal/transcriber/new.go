package transcriber

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/classnotes/internal/config"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"github.com/nguyentantai21042004/classnotes/pkg/executor"
)

// Options tune the per-fragment retry loop.
type Options struct {
	MaxAttempts int
	Language    string
	RetryDelay  time.Duration
}

type implTranscriber struct {
	recognizer  Recognizer
	logger      logger.Logger
	maxAttempts int
	language    string
	retryDelay  time.Duration
	maxElapsed  time.Duration
}

// New creates a Transcriber. MaxAttempts defaults to 3 and Language to pt-BR.
func New(rec Recognizer, log logger.Logger, opts Options) Transcriber {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Language == "" {
		opts.Language = "pt-BR"
	}
	return &implTranscriber{
		recognizer:  rec,
		logger:      log,
		maxAttempts: opts.MaxAttempts,
		language:    opts.Language,
		retryDelay:  opts.RetryDelay,
	}
}

// NewRecognizer builds the backend selected by cfg.Transcriber.Backend.
func NewRecognizer(ctx context.Context, cfg *config.Config, exec executor.Executor) (Recognizer, error) {
	switch cfg.Transcriber.Backend {
	case "gemini":
		return NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.TranscribeModel)
	case "whisper":
		return NewWhisper(exec, cfg.Transcriber.Whisper), nil
	default:
		return nil, fmt.Errorf("unknown transcriber backend %q", cfg.Transcriber.Backend)
	}
}
