package summarizer

import (
	"github.com/nguyentantai21042004/classnotes/internal/logger"
)

type implSummarizer struct {
	provider Provider
	logger   logger.Logger
}

// New creates a Summarizer on top of provider.
func New(provider Provider, log logger.Logger) Summarizer {
	return &implSummarizer{
		provider: provider,
		logger:   log,
	}
}
