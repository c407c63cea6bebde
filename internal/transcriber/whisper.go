package transcriber

import (
	"context"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/classnotes/internal/config"
	"github.com/nguyentantai21042004/classnotes/pkg/executor"
)

type whisperRecognizer struct {
	executor executor.Executor
	cfg      config.WhisperConfig
}

// NewWhisper creates a Recognizer running a local whisper.cpp binary.
func NewWhisper(exec executor.Executor, cfg config.WhisperConfig) Recognizer {
	return &whisperRecognizer{executor: exec, cfg: cfg}
}

func (w *whisperRecognizer) Name() string { return "whisper" }

// Recognize prints the plain transcript to stdout.
// -nt: no timestamps
// -np: no progress or system info
func (w *whisperRecognizer) Recognize(ctx context.Context, audio Audio, language string) (string, error) {
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audio.Path,
		"-l", whisperLanguage(language),
		"-nt",
		"-np",
	}
	if w.cfg.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(w.cfg.Threads))
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	out, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...)
	if err != nil {
		return "", &RequestError{Backend: w.Name(), Err: err}
	}

	text := strings.Join(strings.Fields(out), " ")
	if text == "" {
		return "", ErrUnintelligible
	}
	return text, nil
}

// whisperLanguage maps a BCP 47 tag such as pt-BR to whisper's two-letter code.
func whisperLanguage(tag string) string {
	primary, _, _ := strings.Cut(tag, "-")
	return strings.ToLower(primary)
}
