package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cenkalti/backoff/v5"
)

func (t *implTranscriber) Transcribe(ctx context.Context, fragmentsDir, outputPath string) (string, error) {
	files, err := listFragments(fragmentsDir)
	if err != nil {
		return "", fmt.Errorf("list fragments: %w", err)
	}
	if len(files) == 0 {
		t.logger.Warn(ctx, "No audio files found in %s", fragmentsDir)
		return "", nil
	}

	t.logger.Info(ctx, "Transcribing %d fragments with %s (%s)", len(files), t.recognizer.Name(), t.language)

	var sb strings.Builder
	succeeded := 0
	for i, path := range files {
		name := filepath.Base(path)
		audio, err := loadAudio(path)
		if err != nil {
			return "", fmt.Errorf("load %s: %w", name, err)
		}
		t.logger.Info(ctx, "[%d/%d] Processing: %s (%s, %d Hz)", i+1, len(files), name, audio.Duration, audio.SampleRate)

		text, err := t.recognize(ctx, audio)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			t.logger.Warn(ctx, "Failed to transcribe %s after %d attempts: %v", name, t.maxAttempts, err)
			continue
		}

		sb.WriteString(text)
		sb.WriteString(" ")
		succeeded++
	}

	if succeeded == 0 {
		t.logger.Warn(ctx, "No transcriptions made")
		return "", nil
	}

	transcript := sb.String()
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create texts dir: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(transcript), 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	t.logger.Info(ctx, "Transcript written: %s (%d/%d fragments)", outputPath, succeeded, len(files))
	return transcript, nil
}

// recognize retries unintelligible audio and request errors; anything else gives up on the fragment.
func (t *implTranscriber) recognize(ctx context.Context, audio Audio) (string, error) {
	name := filepath.Base(audio.Path)
	attempt := 0

	op := func() (string, error) {
		attempt++
		text, err := t.recognizer.Recognize(ctx, audio, t.language)
		if err == nil {
			return text, nil
		}

		var reqErr *RequestError
		switch {
		case errors.Is(err, ErrUnintelligible):
			t.logger.Warn(ctx, "Attempt %d/%d: could not understand the audio: %s", attempt, t.maxAttempts, name)
			return "", err
		case errors.As(err, &reqErr):
			t.logger.Warn(ctx, "Attempt %d/%d: error requesting the speech service for %s: %v", attempt, t.maxAttempts, name, reqErr.Err)
			return "", err
		default:
			return "", backoff.Permanent(err)
		}
	}

	// maxElapsed 0 disables backoff's 15 minute default so slow backends
	// still get every attempt.
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(t.retryDelay)),
		backoff.WithMaxTries(uint(t.maxAttempts)),
		backoff.WithMaxElapsedTime(t.maxElapsed),
	)
}

func listFragments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".wav") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Strings(files)
	return files, nil
}
