package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const cardsSelector = "#tabContent > #tab-content-cards > div.container"

type ChromeOptions struct {
	UserAgent   string
	Headless    bool
	LoginSettle time.Duration
}

type chromeBrowser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	settle      time.Duration
}

// ChromeOpener returns a BrowserOpener that launches a local Chrome.
func ChromeOpener(opts ChromeOptions) BrowserOpener {
	return func(ctx context.Context) (Browser, error) {
		allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.UserAgent(opts.UserAgent),
		)
		allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
		tabCtx, cancel := chromedp.NewContext(allocCtx)

		// The first Run starts the browser; network events feed OnRequest.
		if err := chromedp.Run(tabCtx, network.Enable()); err != nil {
			cancel()
			allocCancel()
			return nil, fmt.Errorf("start chrome: %w", err)
		}

		return &chromeBrowser{
			ctx:         tabCtx,
			cancel:      cancel,
			allocCancel: allocCancel,
			settle:      opts.LoginSettle,
		}, nil
	}
}

// run executes actions in the tab, giving up when ctx is done.
func (b *chromeBrowser) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(b.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func (b *chromeBrowser) Login(ctx context.Context, siteURL, user, password string) error {
	return b.run(ctx,
		chromedp.Navigate(siteURL),
		chromedp.WaitVisible("#signInName", chromedp.ByQuery),
		chromedp.SendKeys("#signInName", user, chromedp.ByQuery),
		chromedp.SendKeys("#password", password, chromedp.ByQuery),
		chromedp.Click("#next", chromedp.ByQuery),
		chromedp.Sleep(b.settle),
	)
}

func (b *chromeBrowser) CardsHTML(ctx context.Context, classURL string) (string, error) {
	var html string
	err := b.run(ctx,
		chromedp.Navigate(classURL),
		chromedp.WaitReady(cardsSelector, chromedp.ByQuery),
		chromedp.OuterHTML("#tabContent", &html, chromedp.ByQuery),
	)
	return html, err
}

func (b *chromeBrowser) OnRequest(fn func(url string)) {
	chromedp.ListenTarget(b.ctx, func(ev interface{}) {
		if e, ok := ev.(*network.EventRequestWillBeSent); ok {
			fn(e.Request.URL)
		}
	})
}

func (b *chromeBrowser) Navigate(ctx context.Context, url string) error {
	return b.run(ctx, chromedp.Navigate(url))
}

func (b *chromeBrowser) Close() error {
	err := chromedp.Cancel(b.ctx)
	b.cancel()
	b.allocCancel()
	return err
}
