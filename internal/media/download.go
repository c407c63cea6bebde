package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Download runs yt-dlp with the best audio format and a wav post-processor.
// The output template keeps the stem of dest so every run lands on the same file.
func (m *implMedia) Download(ctx context.Context, url, dest string) error {
	if url == "" {
		return fmt.Errorf("download: empty url")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}

	stem := strings.TrimSuffix(dest, filepath.Ext(dest))
	m.logger.Info(ctx, "Downloading audio: %s -> %s", url, dest)

	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "wav",
		"--force-overwrites",
		"--no-playlist",
		"-o", stem + ".%(ext)s",
		url,
	}

	if _, err := m.executor.Execute(ctx, m.cfg.Tools.YtDlp, args...); err != nil {
		return fmt.Errorf("yt-dlp download: %w", err)
	}

	if _, err := os.Stat(dest); err != nil {
		return fmt.Errorf("downloaded audio missing: %w", err)
	}

	m.logger.Info(ctx, "Audio downloaded: %s", dest)
	return nil
}
