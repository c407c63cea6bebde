package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const themePrompt = "De forma sucinta, qual o tema da aula? A resposta deve conter no máximo 3 linhas."

// Generate fails with ErrFileNotFound or *UploadError before talking to the model.
// Generation errors are returned as they come.
func (s *implSummarizer) Generate(ctx context.Context, inputPath, prompt string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return "", err
	}

	s.logger.Debug(ctx, "Uploading %s to the LLM file store", inputPath)
	ref, err := s.provider.Upload(ctx, inputPath)
	if err != nil {
		return "", &UploadError{Path: inputPath, Err: err}
	}

	text, err := s.provider.Generate(ctx, prompt, ref)
	if err != nil {
		return "", fmt.Errorf("generate content for %s: %w", filepath.Base(inputPath), err)
	}
	return text, nil
}

func (s *implSummarizer) Theme(ctx context.Context, transcriptPath string) (string, error) {
	theme, err := s.Generate(ctx, transcriptPath, themePrompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(theme), nil
}

// WriteNote saves text as a markdown file, adding the .md extension when missing,
// and returns the path written.
func WriteNote(text, outputPath string) (string, error) {
	if !strings.HasSuffix(outputPath, ".md") {
		outputPath += ".md"
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create notes dir: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	return outputPath, nil
}
