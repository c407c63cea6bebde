package watcher

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
)

// DefaultSettle is how long a new file is left alone before it is processed.
const DefaultSettle = 500 * time.Millisecond

// New creates a Watcher on inboxDir. Recordings are handled one at a time
// because every run shares the same working files.
func New(inboxDir string, handler EventHandler, log logger.Logger, settle time.Duration) (Watcher, error) {
	if err := os.MkdirAll(inboxDir, 0755); err != nil {
		return nil, fmt.Errorf("create inbox: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if settle <= 0 {
		settle = DefaultSettle
	}

	return &implWatcher{
		inboxDir: inboxDir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		settle:   settle,
		busy:     make(chan struct{}, 1),
	}, nil
}
