package summarizer

import (
	"context"
	"errors"
	"fmt"
)

// Summarizer asks an LLM about a local text file.
type Summarizer interface {
	// Generate uploads inputPath and returns the model's answer to prompt.
	Generate(ctx context.Context, inputPath, prompt string) (string, error)
	// Theme returns a short description of what the class in transcriptPath was about.
	Theme(ctx context.Context, transcriptPath string) (string, error)
}

// Provider is the LLM backend: a file store plus a completion endpoint.
type Provider interface {
	Upload(ctx context.Context, path string) (FileRef, error)
	Generate(ctx context.Context, prompt string, file FileRef) (string, error)
}

// FileRef points at a file already uploaded to the provider.
type FileRef struct {
	Name     string
	URI      string
	MIMEType string
}

// ErrFileNotFound is returned when the input file does not exist locally.
var ErrFileNotFound = errors.New("file not found")

// UploadError wraps a failed provider upload.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("error uploading file %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
