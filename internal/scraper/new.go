package scraper

import (
	"time"

	"github.com/nguyentantai21042004/classnotes/internal/config"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
)

// DefaultCaptureTimeout bounds the wait for the media request.
const DefaultCaptureTimeout = 30 * time.Second

type Options struct {
	SiteURL         string
	ClassURL        string
	DownloadPattern string
	Login           string
	Password        string
	CaptureTimeout  time.Duration
}

type implScraper struct {
	open   BrowserOpener
	opts   Options
	logger logger.Logger
	now    func() time.Time
}

// New creates a Scraper that opens a browser through open on every call.
func New(open BrowserOpener, opts Options, log logger.Logger) Scraper {
	if opts.CaptureTimeout <= 0 {
		opts.CaptureTimeout = DefaultCaptureTimeout
	}
	return &implScraper{
		open:   open,
		opts:   opts,
		logger: log,
		now:    time.Now,
	}
}

// NewFromConfig creates a Scraper backed by headless Chrome.
func NewFromConfig(cfg config.PortalConfig, log logger.Logger) Scraper {
	open := ChromeOpener(ChromeOptions{
		UserAgent:   cfg.UserAgent,
		Headless:    cfg.Headless,
		LoginSettle: cfg.LoginSettle,
	})
	return New(open, Options{
		SiteURL:         cfg.SiteURL,
		ClassURL:        cfg.ClassURL,
		DownloadPattern: cfg.DownloadPattern,
		Login:           cfg.Login,
		Password:        cfg.Password,
	}, log)
}
