package history

import (
	"context"
	"errors"
	"time"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// ErrLocked is returned by Locker.Acquire while another run holds the lock.
var ErrLocked = errors.New("another run is in progress")

// Run is one pipeline execution.
type Run struct {
	ID         string
	ClassName  string
	ClassDate  string
	Theme      string
	FolderID   string
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store records pipeline runs.
type Store interface {
	// Begin inserts a running row and returns it with its ID and StartedAt set.
	Begin(ctx context.Context) (Run, error)
	// Finish updates the row identified by run.ID with its outcome.
	Finish(ctx context.Context, run Run) error
	// List returns up to limit runs, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// Locker guarantees a single pipeline run at a time across processes.
type Locker interface {
	Acquire(ctx context.Context, owner string) error
	Release(ctx context.Context, owner string) error
}
