package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/classnotes/internal/drive"
	"github.com/nguyentantai21042004/classnotes/internal/history"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"github.com/nguyentantai21042004/classnotes/internal/notifier"
	"github.com/oklog/ulid/v2"
)

// class identifies the recording being processed.
type class struct {
	name string
	date time.Time
}

// acquireFunc puts the class audio at paths.audio.
type acquireFunc func(ctx context.Context) (class, error)

func (p *implPipeline) Run(ctx context.Context) (*Record, error) {
	if p.deps.Scraper == nil {
		return nil, fmt.Errorf("pipeline has no scraper")
	}
	return p.execute(ctx, p.scrapeAndDownload)
}

// execute wraps one run with the run lock and its history row.
func (p *implPipeline) execute(ctx context.Context, acquire acquireFunc) (*Record, error) {
	run := history.Run{ID: ulid.Make().String(), Status: history.StatusRunning, StartedAt: p.now()}
	if p.deps.Store != nil {
		started, err := p.deps.Store.Begin(ctx)
		if err != nil {
			return nil, err
		}
		run = started
	}
	ctx = logger.WithRunID(ctx, run.ID)

	if p.deps.Locker != nil {
		if err := p.deps.Locker.Acquire(ctx, run.ID); err != nil {
			p.finish(ctx, run, nil, "", err)
			return nil, err
		}
		defer func() {
			if err := p.deps.Locker.Release(context.WithoutCancel(ctx), run.ID); err != nil {
				p.logger.Warn(ctx, "Failed to release run lock: %v", err)
			}
		}()
	}

	startTime := time.Now()
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting class pipeline")
	p.logger.Info(ctx, "========================================")

	rec, folderID, err := p.process(ctx, acquire)
	p.finish(ctx, run, rec, folderID, err)
	if err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Pipeline completed: %s (%s)", rec.ClassName, rec.ClassDate)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")
	return rec, nil
}

func (p *implPipeline) finish(ctx context.Context, run history.Run, rec *Record, folderID string, runErr error) {
	if p.deps.Store == nil {
		return
	}

	run.Status = history.StatusSucceeded
	if runErr != nil {
		run.Status = history.StatusFailed
	}
	if rec != nil {
		run.ClassName = rec.ClassName
		run.ClassDate = rec.ClassDate
		run.Theme = rec.ClassTheme
	}
	run.FolderID = folderID
	run.FinishedAt = p.now()

	if err := p.deps.Store.Finish(context.WithoutCancel(ctx), run); err != nil {
		p.logger.Warn(ctx, "Failed to record run %s: %v", run.ID, err)
	}
}

// process runs every step after the audio is in place. Failures of media,
// transcription and Drive steps are logged and the run goes on; LLM and
// notification failures end it.
func (p *implPipeline) process(ctx context.Context, acquire acquireFunc) (*Record, string, error) {
	cls, err := acquire(ctx)
	if err != nil {
		return nil, "", err
	}

	if err := p.deps.Media.Fragment(ctx, p.paths.audio, p.paths.fragments, p.segment); err != nil {
		p.logger.Error(ctx, "Failed to fragment audio: %v", err)
	}

	transcript, err := p.deps.Transcriber.Transcribe(ctx, p.paths.fragments, p.paths.transcript)
	switch {
	case err != nil:
		p.logger.Error(ctx, "Failed to transcribe audio: %v", err)
	case transcript == "":
		p.logger.Warn(ctx, "Transcription produced no text")
	}

	folderID := p.createFolder(ctx, cls.name)
	p.upload(ctx, "transcription", p.paths.transcript, folderID)

	notePaths, err := p.generateNotes(ctx, folderID)
	if err != nil {
		return nil, folderID, err
	}

	theme, err := p.deps.Summarizer.Theme(ctx, p.paths.transcript)
	if err != nil {
		return nil, folderID, fmt.Errorf("class theme: %w", err)
	}

	date := cls.date.Format(DateLayout)
	message := notifier.FormatMessage(date, cls.name, theme)
	if err := p.deps.Notifier.Send(ctx, message, notePaths); err != nil {
		return nil, folderID, fmt.Errorf("notify: %w", err)
	}

	for _, path := range notePaths {
		p.cleanupFile(ctx, path)
	}

	return &Record{ClassName: cls.name, ClassDate: date, ClassTheme: theme}, folderID, nil
}

func (p *implPipeline) scrapeAndDownload(ctx context.Context) (class, error) {
	cls := class{date: p.now().AddDate(0, 0, -1)}

	res, err := p.deps.Scraper.Scrape(ctx)
	if err != nil {
		return cls, fmt.Errorf("scrape: %w", err)
	}
	if res == nil {
		if p.abortOnNoClass {
			return cls, ErrNoClass
		}
		p.logger.Warn(ctx, "No class found; continuing with the artifacts of the previous run")
		return cls, nil
	}

	cls.name = res.Session.Name
	if !res.Session.Date.IsZero() {
		cls.date = res.Session.Date
	}

	p.logger.Info(ctx, "Downloading %s", res.DownloadURL)
	if err := p.deps.Media.Download(ctx, res.DownloadURL, p.paths.audio); err != nil {
		p.logger.Error(ctx, "Failed to download the recording: %v", err)
	}
	return cls, nil
}

// createFolder returns the new folder ID, or "" when Drive failed.
func (p *implPipeline) createFolder(ctx context.Context, className string) string {
	count, err := p.deps.Drive.CountFolders(ctx, p.rootFolderID)
	if err != nil {
		p.logger.Error(ctx, "Failed to count Drive folders: %v", err)
	}

	folderID, err := p.deps.Drive.CreateFormattedFolder(ctx, drive.FormatName(className), count, p.rootFolderID)
	if err != nil {
		p.logger.Error(ctx, "Failed to create Drive folder: %v", err)
		return ""
	}
	return folderID
}

func (p *implPipeline) upload(ctx context.Context, name, localPath, folderID string) {
	if folderID == "" {
		p.logger.Warn(ctx, "Skipping upload of %s: no Drive folder", name)
		return
	}
	if _, err := p.deps.Drive.UploadFile(ctx, name, localPath, folderID); err != nil {
		p.logger.Error(ctx, "Failed to upload %s: %v", name, err)
	}
}

// uploadName strips everything from the first dot, so "resumo.md" is stored as "resumo".
func uploadName(fileName string) string {
	name, _, _ := strings.Cut(fileName, ".")
	return name
}

// cleanupFile removes a file, logs warning if it fails.
func (p *implPipeline) cleanupFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup %s: %v", path, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up: %s", path)
	}
}

func (p *implPipeline) textPath(name string) string {
	return filepath.Join(p.paths.texts, name)
}
