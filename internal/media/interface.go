package media

import (
	"context"
	"time"
)

// Media turns a recording URL or file into fragments ready for transcription.
type Media interface {
	// Download fetches the best audio stream of url and transcodes it to dest (.wav).
	// An existing file at dest is replaced.
	Download(ctx context.Context, url, dest string) error
	// Fragment splits src into segment-long files in destDir without re-encoding.
	Fragment(ctx context.Context, src, destDir string, segment time.Duration) error
	// ExtractAudio converts a local audio or video file to 16kHz mono WAV at dest.
	ExtractAudio(ctx context.Context, src, dest string) error
}

// FragmentPattern names fragments so that lexicographic order is chronological order.
const FragmentPattern = "output%03d.wav"

// DefaultSegment is the fragment length used when none is configured.
const DefaultSegment = 150 * time.Second
