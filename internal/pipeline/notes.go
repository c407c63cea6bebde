package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/classnotes/internal/summarizer"
)

// generateNotes writes every note under the texts folder, uploads it and
// returns the local paths in generation order.
func (p *implPipeline) generateNotes(ctx context.Context, folderID string) ([]string, error) {
	paths := make([]string, 0, len(p.notes))
	for _, note := range p.notes {
		p.logger.Info(ctx, "Creating note: %s", note.ID)
		text, err := p.deps.Summarizer.Generate(ctx, p.textPath(note.OriginFile), note.Prompt)
		if err != nil {
			return nil, fmt.Errorf("note %s: %w", note.ID, err)
		}

		path, err := summarizer.WriteNote(text, p.textPath(note.FileName))
		if err != nil {
			return nil, fmt.Errorf("note %s: %w", note.ID, err)
		}
		paths = append(paths, path)

		p.uploadNote(ctx, uploadName(note.FileNamePT), path, folderID)
		p.logger.Info(ctx, "Created note: %s", note.ID)

		if err := p.pause(ctx); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// pause idles for the note interval after a note is stored, keeping the
// LLM provider under its per-minute quota.
func (p *implPipeline) pause(ctx context.Context) error {
	if p.noteInterval <= 0 {
		return nil
	}

	p.logger.Debug(ctx, "Waiting %s before the next LLM request", p.noteInterval)
	select {
	case <-time.After(p.noteInterval):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// uploadNote stores the note on Drive, as Word when docx export is on.
func (p *implPipeline) uploadNote(ctx context.Context, name, path, folderID string) {
	if !p.exportDocx || folderID == "" {
		p.upload(ctx, name, path, folderID)
		return
	}

	docxPath := filepath.Join(p.paths.temp, name+".docx")
	if err := summarizer.ExportDocx(name, path, docxPath); err != nil {
		p.logger.Error(ctx, "Failed to export %s to docx, uploading markdown: %v", name, err)
		p.upload(ctx, name, path, folderID)
		return
	}
	defer p.cleanupFile(ctx, docxPath)

	p.upload(ctx, name+".docx", docxPath, folderID)
}
