package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/bcmk/camgrab/lib/cmdlib"
)

// HTTPFetcher is the direct HTTP strategy rotating over source addresses
type HTTPFetcher struct {
	loop    *cmdlib.ClientsLoop
	headers [][2]string
	dbg     bool
}

var _ Fetcher = &HTTPFetcher{}

// NewHTTPFetcher returns a direct HTTP fetcher
func NewHTTPFetcher(clients []*cmdlib.Client, headers [][2]string, dbg bool) *HTTPFetcher {
	return &HTTPFetcher{loop: cmdlib.NewClientsLoop(clients), headers: headers, dbg: dbg}
}

// Kind returns the strategy name
func (f *HTTPFetcher) Kind() string { return StrategyHTTP }

// Get performs a GET request respecting the configuration
func (f *HTTPFetcher) Get(ctx context.Context, url string) (*Response, error) {
	client := f.loop.NextClient()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for _, h := range f.headers {
		req.Header.Set(h[0], h[1])
	}
	resp, err := client.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[%v] cannot send a query, %v", client.Addr, err)
	}
	defer cmdlib.CloseBody(resp.Body)
	buf := bytes.Buffer{}
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("[%v] cannot read response, %v", client.Addr, err)
	}
	if f.dbg {
		cmdlib.Ldbg("[%v] query status for %s: %d", client.Addr, url, resp.StatusCode)
	}
	return &Response{StatusCode: resp.StatusCode, Body: buf.String()}, nil
}
