package resolver

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bcmk/camgrab/internal/fetch"
	"github.com/bcmk/camgrab/lib/cmdlib"
)

type fakeFetcher struct {
	responses map[string]*fetch.Response
	errs      map[string]error
	calls     []string
}

func (f *fakeFetcher) Kind() string { return "fake" }

func (f *fakeFetcher) Get(_ context.Context, url string) (*fetch.Response, error) {
	f.calls = append(f.calls, url)
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	if resp := f.responses[url]; resp != nil {
		return resp, nil
	}
	return &fetch.Response{StatusCode: 404}, nil
}

func newTestResolver(f *fakeFetcher) *Resolver {
	return &Resolver{Fetcher: f, ProfileAPIBase: "http://api", ThumbnailBase: "http://thumbs"}
}

func TestCanonicalModelID(t *testing.T) {
	if CanonicalModelID("https://www.cam4.com/Foo_1") != "foo_1" {
		t.Error("unexpected results")
	}
	if CanonicalModelID("http://cam4.com/foo_1?track=x") != "foo_1" {
		t.Error("unexpected results")
	}
	if CanonicalModelID("de.cam4.com/foo_1/") != "foo_1" {
		t.Error("unexpected results")
	}
	if CanonicalModelID("Foo_1") != "foo_1" {
		t.Error("unexpected results")
	}
	if CanonicalModelID("https://example.com/foo_1") == "foo_1" {
		t.Error("foreign link should not canonicalize")
	}
}

func TestResolveInvalidInput(t *testing.T) {
	f := &fakeFetcher{}
	r := newTestResolver(f)
	result := r.Resolve(context.Background(), "https://example.com/not a model")
	if result.Status != StatusNotFound {
		t.Errorf("expected not_found, got %v", result.Status)
	}
	if result.ThumbnailURL != "" {
		t.Error("no thumbnail for failed extraction")
	}
	if len(f.calls) != 0 {
		t.Errorf("expected no network calls, got %v", f.calls)
	}
}

func TestResolveNotFound(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*fetch.Response{
		"http://api/foo_1/info": {StatusCode: 404},
	}}
	result := newTestResolver(f).Resolve(context.Background(), "foo_1")
	if result.Status != StatusNotFound || result.StreamURL != "" {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Message != "foo_1: Performer not found" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestResolveTransportFaultIsAbsorbed(t *testing.T) {
	f := &fakeFetcher{errs: map[string]error{
		"http://api/foo_1/info": errors.New("connection refused"),
	}}
	result := newTestResolver(f).Resolve(context.Background(), "foo_1")
	if result.Status != StatusNotFound {
		t.Errorf("expected not_found, got %v", result.Status)
	}
}

func TestResolveEmptyProfile(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*fetch.Response{
		"http://api/foo_1/info": {StatusCode: 200, Body: "{}"},
	}}
	result := newTestResolver(f).Resolve(context.Background(), "foo_1")
	if result.Status != StatusNotFound {
		t.Errorf("expected not_found, got %v", result.Status)
	}
}

func TestResolveOffline(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*fetch.Response{
		"http://api/foo_1/info": {StatusCode: 200, Body: `{"online": false}`},
	}}
	result := newTestResolver(f).Resolve(context.Background(), "foo_1")
	if result.Status != StatusOffline {
		t.Errorf("expected offline, got %v", result.Status)
	}
	if result.ThumbnailURL != "http://thumbs/foo_1" {
		t.Errorf("unexpected thumbnail %q", result.ThumbnailURL)
	}
}

func TestResolveOnlineNotStreaming(t *testing.T) {
	for name, resp := range map[string]*fetch.Response{
		"no content": {StatusCode: 204},
		"not found":  {StatusCode: 404},
		"empty":      {StatusCode: 200, Body: "{}"},
		"no url":     {StatusCode: 200, Body: `{"cdnURL": ""}`},
	} {
		f := &fakeFetcher{responses: map[string]*fetch.Response{
			"http://api/foo_1/info":       {StatusCode: 200, Body: `{"online": true}`},
			"http://api/foo_1/streamInfo": resp,
		}}
		result := newTestResolver(f).Resolve(context.Background(), "foo_1")
		if result.Status != StatusOnlineNotStreaming {
			t.Errorf("%s: expected online_not_streaming, got %v", name, result.Status)
		}
		if result.StreamURL != "" {
			t.Errorf("%s: unexpected stream URL", name)
		}
	}
}

func TestResolveStreaming(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*fetch.Response{
		"http://api/foo_1/info":       {StatusCode: 200, Body: `{"online": true}`},
		"http://api/foo_1/streamInfo": {StatusCode: 200, Body: `{"cdnURL": "https://cdn/x.m3u8"}`},
		"https://cdn/x.m3u8":          {StatusCode: 200, Body: "#EXTM3U\n#EXT-X-VERSION:3\n"},
	}}
	result := newTestResolver(f).Resolve(context.Background(), "foo_1")
	if result.Status != StatusStreaming {
		t.Errorf("expected streaming, got %v", result.Status)
	}
	if result.StreamURL != "https://cdn/x.m3u8" {
		t.Errorf("unexpected stream URL %q", result.StreamURL)
	}
}

func TestResolvePrivateMarkerOverridesStatus(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*fetch.Response{
		"http://api/foo_1/info":       {StatusCode: 200, Body: `{"online": true}`},
		"http://api/foo_1/streamInfo": {StatusCode: 200, Body: `{"cdnURL": "https://cdn/x.m3u8"}`},
		"https://cdn/x.m3u8":          {StatusCode: 200, Body: "Session is not allowed to view this stream"},
	}}
	result := newTestResolver(f).Resolve(context.Background(), "foo_1")
	if result.Status != StatusPrivateOrAway {
		t.Errorf("expected private_or_away, got %v", result.Status)
	}
}

func TestResolvePrivateByStatusCode(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*fetch.Response{
		"http://api/foo_1/info":       {StatusCode: 200, Body: `{"online": true}`},
		"http://api/foo_1/streamInfo": {StatusCode: 200, Body: `{"cdnURL": "https://cdn/x.m3u8"}`},
		"https://cdn/x.m3u8":          {StatusCode: 403, Body: ""},
	}}
	result := newTestResolver(f).Resolve(context.Background(), "foo_1")
	if result.Status != StatusPrivateOrAway {
		t.Errorf("expected private_or_away, got %v", result.Status)
	}
}

func TestResolveInvalidStreamResponse(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*fetch.Response{
		"http://api/foo_1/info":       {StatusCode: 200, Body: `{"online": true}`},
		"http://api/foo_1/streamInfo": {StatusCode: 200, Body: `{"cdnURL": "https://cdn/x.m3u8"}`},
		"https://cdn/x.m3u8":          {StatusCode: 200, Body: "<html>nothing here</html>"},
	}}
	result := newTestResolver(f).Resolve(context.Background(), "foo_1")
	if result.Status != StatusPrivateOrAway {
		t.Errorf("expected private_or_away, got %v", result.Status)
	}
	if result.Message != "foo_1: Invalid stream response" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestStatusString(t *testing.T) {
	statuses := map[StatusKind]string{
		StatusNotFound:           "not_found",
		StatusOffline:            "offline",
		StatusOnlineNotStreaming: "online_not_streaming",
		StatusPrivateOrAway:      "private_or_away",
		StatusStreaming:          "streaming",
	}
	for s, expected := range statuses {
		if s.String() != expected {
			t.Errorf("expected %q, got %q", expected, s.String())
		}
	}
}

func TestMain(m *testing.M) {
	cmdlib.Verbosity = cmdlib.SilentVerbosity
	os.Exit(m.Run())
}
