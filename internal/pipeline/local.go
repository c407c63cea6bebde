package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RunLocal runs the pipeline on a recording dropped on disk. The class is
// named after the file and dated by its modification day.
func (p *implPipeline) RunLocal(ctx context.Context, recordingPath string) (*Record, error) {
	return p.execute(ctx, func(ctx context.Context) (class, error) {
		info, err := os.Stat(recordingPath)
		if err != nil {
			return class{}, fmt.Errorf("stat recording: %w", err)
		}

		base := filepath.Base(recordingPath)
		y, m, d := info.ModTime().Date()
		cls := class{
			name: strings.TrimSuffix(base, filepath.Ext(base)),
			date: time.Date(y, m, d, 0, 0, 0, 0, info.ModTime().Location()),
		}

		p.logger.Info(ctx, "Extracting audio from %s", recordingPath)
		if err := p.deps.Media.ExtractAudio(ctx, recordingPath, p.paths.audio); err != nil {
			return cls, fmt.Errorf("extract audio: %w", err)
		}
		return cls, nil
	})
}
