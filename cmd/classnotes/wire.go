package main

import (
	"context"

	"github.com/nguyentantai21042004/classnotes/internal/config"
	"github.com/nguyentantai21042004/classnotes/internal/drive"
	"github.com/nguyentantai21042004/classnotes/internal/history"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"github.com/nguyentantai21042004/classnotes/internal/media"
	"github.com/nguyentantai21042004/classnotes/internal/notifier"
	"github.com/nguyentantai21042004/classnotes/internal/pipeline"
	"github.com/nguyentantai21042004/classnotes/internal/scraper"
	"github.com/nguyentantai21042004/classnotes/internal/summarizer"
	"github.com/nguyentantai21042004/classnotes/internal/transcriber"
	"github.com/nguyentantai21042004/classnotes/pkg/executor"
)

// buildPipeline wires every component from cfg. The scraper is only built
// for portal runs. The returned cleanup closes the history store and Redis.
func buildPipeline(ctx context.Context, cfg *config.Config, log logger.Logger, withScraper bool) (pipeline.Pipeline, func(), error) {
	notes, err := config.LoadNotes(cfg.Paths.Notes)
	if err != nil {
		return nil, nil, err
	}

	exec := executor.New()

	rec, err := transcriber.NewRecognizer(ctx, cfg, exec)
	if err != nil {
		return nil, nil, err
	}

	drv, err := drive.New(ctx, cfg.Drive.CredentialsFile, log)
	if err != nil {
		return nil, nil, err
	}

	provider, err := summarizer.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, nil, err
	}

	ntf, err := notifier.New(cfg.Discord.WebhookURL, log)
	if err != nil {
		return nil, nil, err
	}

	db, err := history.Open(cfg.History.Dir)
	if err != nil {
		return nil, nil, err
	}
	store := history.NewStore(db)
	closers := []func() error{store.Close}

	locker := history.NewSQLiteLocker(db, cfg.History.LockTTL)
	if cfg.History.RedisURL != "" {
		redisLocker, client, err := history.NewRedisLocker(cfg.History.RedisURL, cfg.History.LockTTL)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		locker = redisLocker
		closers = append(closers, client.Close)
	}

	cleanup := func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				log.Warn(ctx, "Cleanup failed: %v", err)
			}
		}
	}

	deps := pipeline.Deps{
		Media: media.New(cfg, exec, log),
		Transcriber: transcriber.New(rec, log, transcriber.Options{
			MaxAttempts: cfg.Transcriber.MaxAttempts,
			Language:    cfg.Transcriber.Language,
			RetryDelay:  cfg.Transcriber.RetryDelay,
		}),
		Drive:      drv,
		Summarizer: summarizer.New(provider, log),
		Notifier:   ntf,
		Store:      store,
		Locker:     locker,
		Logger:     log,
	}
	if withScraper {
		deps.Scraper = scraper.NewFromConfig(cfg.Portal, log)
	}

	return pipeline.New(cfg, notes, deps), cleanup, nil
}
