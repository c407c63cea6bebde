package scraper

import (
	"context"
	"time"
)

// Scraper finds yesterday's class on the portal and captures its media URL.
type Scraper interface {
	// Scrape returns nil with a nil error when no class matches or no
	// media request is seen before the capture deadline.
	Scrape(ctx context.Context) (*Result, error)
}

// Browser is the slice of a headless browser the scraper drives.
type Browser interface {
	Login(ctx context.Context, siteURL, user, password string) error
	// CardsHTML opens classURL and returns the HTML of the class card tab.
	CardsHTML(ctx context.Context, classURL string) (string, error)
	// OnRequest registers fn for the URL of every outgoing request.
	OnRequest(fn func(url string))
	Navigate(ctx context.Context, url string) error
	Close() error
}

// BrowserOpener starts a fresh browser for one scrape.
type BrowserOpener func(ctx context.Context) (Browser, error)

// Session is a class found on the portal.
type Session struct {
	Link string
	Name string
	Date time.Time
}

type Result struct {
	DownloadURL string
	Session     Session
}
