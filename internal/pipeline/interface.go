// Package pipeline runs the daily class workflow end to end.
package pipeline

import (
	"context"
	"errors"
)

// Pipeline turns a class recording into notes on Drive and a Discord digest.
type Pipeline interface {
	// Run scrapes yesterday's class from the portal and processes it.
	Run(ctx context.Context) (*Record, error)
	// RunLocal processes a recording file that is already on disk.
	RunLocal(ctx context.Context, recordingPath string) (*Record, error)
}

// Record is printed as JSON when a run completes. Partial failures are not reported in it.
type Record struct {
	ClassName  string `json:"class_name"`
	ClassDate  string `json:"class_date"`
	ClassTheme string `json:"class_theme"`
}

// ErrNoClass is returned by Run when no class was found and the pipeline is
// configured to stop in that case.
var ErrNoClass = errors.New("no class found for yesterday")

// DateLayout formats class dates in records and messages.
const DateLayout = "02/01/2006"
