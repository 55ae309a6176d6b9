package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/bcmk/camgrab/lib/cmdlib"
)

// ImpersonatingFetcher is the browser impersonating strategy,
// its transport sends a consistent browser fingerprint
type ImpersonatingFetcher struct {
	client *http.Client
	dbg    bool
}

var _ Fetcher = &ImpersonatingFetcher{}

// NewImpersonatingFetcher returns a browser impersonating fetcher
func NewImpersonatingFetcher(timeoutSeconds int, dbg bool) *ImpersonatingFetcher {
	client := &http.Client{
		CheckRedirect: cmdlib.NoRedirect,
		Timeout:       time.Duration(timeoutSeconds) * time.Second,
	}
	client.Transport = cloudflarebp.AddCloudFlareByPass(client.Transport)
	return &ImpersonatingFetcher{client: client, dbg: dbg}
}

// Kind returns the strategy name
func (f *ImpersonatingFetcher) Kind() string { return StrategyBrowser }

// Get performs a GET request with browser impersonation
func (f *ImpersonatingFetcher) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send a query, %v", err)
	}
	defer cmdlib.CloseBody(resp.Body)
	buf := bytes.Buffer{}
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("cannot read response, %v", err)
	}
	if f.dbg {
		cmdlib.Ldbg("query status for %s: %d", url, resp.StatusCode)
	}
	return &Response{StatusCode: resp.StatusCode, Body: buf.String()}, nil
}
