// Package fetch provides interchangeable HTTP transport strategies
package fetch

import (
	"context"
	"fmt"

	"github.com/bcmk/camgrab/lib/cmdlib"
)

// Response is a fetched page
type Response struct {
	StatusCode int
	Body       string
}

// Fetcher is the transport capability the resolver depends on
type Fetcher interface {
	Get(ctx context.Context, url string) (*Response, error)
	Kind() string
}

// Strategy names
const (
	StrategyHTTP    = "http"
	StrategyBrowser = "browser"
	StrategyChrome  = "chrome"
)

// Config represents fetcher config
type Config struct {
	Clients        []*cmdlib.Client
	Headers        [][2]string
	TimeoutSeconds int
	Dbg            bool
}

// NewFetcher returns a fetcher for the given strategy name
func NewFetcher(strategy string, config Config) (Fetcher, error) {
	if config.TimeoutSeconds == 0 {
		config.TimeoutSeconds = 10
	}
	switch strategy {
	case StrategyHTTP, "":
		clients := config.Clients
		if len(clients) == 0 {
			clients = []*cmdlib.Client{cmdlib.HTTPClientWithTimeout(config.TimeoutSeconds, false)}
		}
		return NewHTTPFetcher(clients, config.Headers, config.Dbg), nil
	case StrategyBrowser:
		return NewImpersonatingFetcher(config.TimeoutSeconds, config.Dbg), nil
	case StrategyChrome:
		return NewChromeFetcher(config.TimeoutSeconds, config.Dbg), nil
	}
	return nil, fmt.Errorf("unknown fetch strategy %q", strategy)
}
