package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Fragment runs ffmpeg in segment mode with stream copy.
// Fragments left over from a previous, longer recording are removed first so they
// cannot leak into this run's transcript.
func (m *implMedia) Fragment(ctx context.Context, src, destDir string, segment time.Duration) error {
	if segment <= 0 {
		segment = DefaultSegment
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create fragments dir: %w", err)
	}
	if err := m.removeStaleFragments(ctx, destDir); err != nil {
		return err
	}

	m.logger.Info(ctx, "Fragmenting %s into %s segments", src, segment)

	args := []string{
		"-y",
		"-i", src,
		"-f", "segment",
		"-segment_time", strconv.Itoa(int(segment.Seconds())),
		"-c", "copy",
		filepath.Join(destDir, FragmentPattern),
	}

	if _, err := m.executor.Execute(ctx, m.cfg.Tools.FFmpeg, args...); err != nil {
		return fmt.Errorf("ffmpeg segment: %w", err)
	}

	m.logger.Info(ctx, "Audio fragmented into %s", destDir)
	return nil
}

func (m *implMedia) removeStaleFragments(ctx context.Context, dir string) error {
	stale, err := filepath.Glob(filepath.Join(dir, "output*.wav"))
	if err != nil {
		return fmt.Errorf("list stale fragments: %w", err)
	}
	for _, f := range stale {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("remove stale fragment: %w", err)
		}
	}
	if len(stale) > 0 {
		m.logger.Debug(ctx, "Removed %d stale fragments from %s", len(stale), dir)
	}
	return nil
}
