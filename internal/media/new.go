package media

import (
	"github.com/nguyentantai21042004/classnotes/internal/config"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"github.com/nguyentantai21042004/classnotes/pkg/executor"
)

type implMedia struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Media backed by ffmpeg and yt-dlp.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Media {
	return &implMedia{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
