package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ExtractAudio converts a recording to 16kHz mono PCM WAV, the format both
// speech backends handle best.
func (m *implMedia) ExtractAudio(ctx context.Context, src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}

	m.logger.Info(ctx, "Extracting audio: %s -> %s", src, dest)

	// -vn: drop video
	// -ar 16000 / -ac 1: 16kHz mono
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", src,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		dest,
	}

	if _, err := m.executor.Execute(ctx, m.cfg.Tools.FFmpeg, args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	m.logger.Info(ctx, "Audio extracted: %s", dest)
	return nil
}
