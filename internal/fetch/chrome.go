package fetch

import (
	"context"
	"time"

	"github.com/bcmk/camgrab/lib/cmdlib"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ChromeFetcher is the remote browser strategy, it drives a headless
// Chrome instance and reads the page body from the DOM
type ChromeFetcher struct {
	timeout time.Duration
	dbg     bool
}

var _ Fetcher = &ChromeFetcher{}

// NewChromeFetcher returns a headless browser fetcher
func NewChromeFetcher(timeoutSeconds int, dbg bool) *ChromeFetcher {
	return &ChromeFetcher{timeout: time.Duration(timeoutSeconds) * time.Second, dbg: dbg}
}

// Kind returns the strategy name
func (f *ChromeFetcher) Kind() string { return StrategyChrome }

// Get navigates to the URL and returns the document body,
// the status code is taken from the document network response
func (f *ChromeFetcher) Get(ctx context.Context, url string) (*Response, error) {
	ctx, cancel := chromedp.NewContext(ctx, chromedp.WithLogf(cmdlib.Ldbg))
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var statusCode int64
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			statusCode = e.Response.Status
		}
	})

	var body string
	err := chromedp.Run(ctx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.Text(`body`, &body, chromedp.ByQuery),
	)
	if err != nil {
		return nil, err
	}
	if f.dbg {
		cmdlib.Ldbg("chrome query status for %s: %d", url, statusCode)
	}
	return &Response{StatusCode: int(statusCode), Body: body}, nil
}
