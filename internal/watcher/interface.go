package watcher

import "context"

// Watcher processes recordings dropped into an inbox folder.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one new recording.
type EventHandler func(ctx context.Context, filePath string) error
