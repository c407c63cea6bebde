package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

func (s *implScraper) Scrape(ctx context.Context) (*Result, error) {
	b, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open browser: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			s.logger.Warn(ctx, "Failed to close browser: %v", err)
		}
	}()

	if err := b.Login(ctx, s.opts.SiteURL, s.opts.Login, s.opts.Password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	html, err := b.CardsHTML(ctx, s.opts.ClassURL)
	if err != nil {
		return nil, fmt.Errorf("read class cards: %w", err)
	}

	cards, err := parseCards(html)
	if err != nil {
		return nil, err
	}

	day := s.now().AddDate(0, 0, -1)
	session, ok := findSession(cards, day)
	if !ok {
		s.logger.Warn(ctx, "No class found for %s", day.Format(dateLayout))
		return nil, nil
	}
	s.logger.Info(ctx, "Found class %q on %s", session.Name, day.Format(dateLayout))

	url, ok := s.capture(ctx, b, s.opts.SiteURL+session.Link)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.Warn(ctx, "No media request matching %q within %s", s.opts.DownloadPattern, s.opts.CaptureTimeout)
		return nil, nil
	}

	s.logger.Info(ctx, "Captured request: %s", url)
	return &Result{DownloadURL: url, Session: session}, nil
}

// capture navigates to pageURL in the background and waits for the first
// request containing the download pattern or the capture deadline.
// Navigation is cancelled before it returns.
func (s *implScraper) capture(ctx context.Context, b Browser, pageURL string) (string, bool) {
	sig := newSignal(s.opts.DownloadPattern)
	b.OnRequest(sig.observe)

	navCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	navDone := make(chan error, 1)
	go func() {
		navDone <- b.Navigate(navCtx, pageURL)
	}()

	timer := time.NewTimer(s.opts.CaptureTimeout)
	defer timer.Stop()

	select {
	case <-sig.done:
	case <-timer.C:
	case <-ctx.Done():
	}

	cancel()
	if err := <-navDone; err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug(ctx, "Navigation ended with: %v", err)
	}

	select {
	case <-sig.done:
		return sig.url, true
	default:
		return "", false
	}
}

// signal records the first URL containing pattern and closes done once.
type signal struct {
	pattern string
	once    sync.Once
	done    chan struct{}
	url     string
}

func newSignal(pattern string) *signal {
	return &signal{pattern: pattern, done: make(chan struct{})}
}

func (s *signal) observe(url string) {
	if !strings.Contains(url, s.pattern) {
		return
	}
	s.once.Do(func() {
		s.url = url
		close(s.done)
	})
}
