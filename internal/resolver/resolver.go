// Package resolver implements the CAM4 performer status resolution chain
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/bcmk/camgrab/internal/fetch"
	"github.com/bcmk/camgrab/lib/cmdlib"
)

// StatusKind represents a status of a performer
type StatusKind int

// Performer statuses
const (
	StatusNotFound StatusKind = iota
	StatusOffline
	StatusOnlineNotStreaming
	StatusPrivateOrAway
	StatusStreaming
)

func (s StatusKind) String() string {
	switch s {
	case StatusNotFound:
		return "not_found"
	case StatusOffline:
		return "offline"
	case StatusOnlineNotStreaming:
		return "online_not_streaming"
	case StatusPrivateOrAway:
		return "private_or_away"
	case StatusStreaming:
		return "streaming"
	}
	return "unknown"
}

// MarshalJSON marshals a status as its string form
func (s StatusKind) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// ModelIDRegexp is a regular expression to check model IDs
var ModelIDRegexp = regexp.MustCompile(`^[a-z0-9_]+$`)

var modelOrLinkRegexp = regexp.MustCompile(`^(?:https?://)?(?:[A-Za-z0-9-]+\.)*cam4\.com/([A-Za-z0-9_]+)(?:[/?].*)?$`)

// CanonicalModelID preprocesses model ID string to canonical for CAM4 form
func CanonicalModelID(name string) string {
	m := modelOrLinkRegexp.FindStringSubmatch(name)
	if len(m) == 2 {
		name = m[1]
	}
	return strings.ToLower(name)
}

// Result is the outcome of a single resolution
type Result struct {
	ModelID      string     `json:"model_id"`
	Status       StatusKind `json:"status"`
	StreamURL    string     `json:"stream_url,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// Default endpoint bases
const (
	DefaultProfileAPIBase = "https://www.cam4.com/rest/v1.0/profile"
	DefaultThumbnailBase  = "https://snapshots.xcdnpro.com/thumbnails"
)

const privateMessage = "Stream not accessible - performer may be in a private show or away"

// Resolver resolves performer statuses through an injected fetcher
type Resolver struct {
	Fetcher        fetch.Fetcher
	ProfileAPIBase string
	ThumbnailBase  string
	Dbg            bool
}

// New returns a resolver with default endpoints
func New(fetcher fetch.Fetcher) *Resolver {
	return &Resolver{
		Fetcher:        fetcher,
		ProfileAPIBase: DefaultProfileAPIBase,
		ThumbnailBase:  DefaultThumbnailBase,
	}
}

type profileInfo struct {
	Online bool `json:"online"`
}

type streamInfo struct {
	CdnURL string `json:"cdnURL"`
}

// Resolve classifies the performer behind a model ID or page link.
// It always returns a completed result, transport faults are folded
// into the nearest status.
func (r *Resolver) Resolve(ctx context.Context, modelOrLink string) Result {
	modelID := CanonicalModelID(modelOrLink)
	if !ModelIDRegexp.MatchString(modelID) {
		return Result{
			ModelID: modelID,
			Status:  StatusNotFound,
			Message: fmt.Sprintf("invalid model ID or link %q", modelOrLink),
		}
	}
	result := Result{
		ModelID:      modelID,
		ThumbnailURL: fmt.Sprintf("%s/%s", r.ThumbnailBase, modelID),
	}

	profile := r.queryProfile(ctx, modelID)
	if profile == nil {
		result.Status = StatusNotFound
		result.Message = fmt.Sprintf("%s: Performer not found", modelID)
		return result
	}

	if !profile.Online {
		result.Status = StatusOffline
		result.Message = fmt.Sprintf("%s: Performer is currently offline", modelID)
		return result
	}

	stream := r.queryStreamInfo(ctx, modelID)
	if stream == nil {
		result.Status = StatusOnlineNotStreaming
		result.Message = fmt.Sprintf("%s: Performer is online but not currently streaming", modelID)
		return result
	}
	if stream.CdnURL == "" {
		result.Status = StatusOnlineNotStreaming
		result.Message = fmt.Sprintf("%s: Stream info found but no playlist URL available", modelID)
		return result
	}

	if accessible, message := r.probeStream(ctx, modelID, stream.CdnURL); !accessible {
		result.Status = StatusPrivateOrAway
		result.Message = fmt.Sprintf("%s: %s", modelID, message)
		return result
	}

	result.Status = StatusStreaming
	result.StreamURL = stream.CdnURL
	return result
}

// queryProfile returns nil both for an absent performer and for an
// unreachable service, the chain does not distinguish the two
func (r *Resolver) queryProfile(ctx context.Context, modelID string) *profileInfo {
	url := fmt.Sprintf("%s/%s/info", r.ProfileAPIBase, modelID)
	resp, err := r.Fetcher.Get(ctx, url)
	if err != nil {
		cmdlib.Lerr("cannot query profile for model %s, %v", modelID, err)
		return nil
	}
	if resp.StatusCode == 404 {
		return nil
	}
	if resp.StatusCode != 200 {
		cmdlib.Lerr("profile query status for model %s: %d", modelID, resp.StatusCode)
		return nil
	}
	body := strings.TrimSpace(resp.Body)
	if body == "" || body == "{}" || body == "null" {
		return nil
	}
	parsed := &profileInfo{}
	if err := json.Unmarshal([]byte(body), parsed); err != nil {
		cmdlib.Lerr("cannot parse profile for model %s, %v", modelID, err)
		if r.Dbg {
			cmdlib.Ldbg("response: %s", resp.Body)
		}
		return nil
	}
	return parsed
}

func (r *Resolver) queryStreamInfo(ctx context.Context, modelID string) *streamInfo {
	url := fmt.Sprintf("%s/%s/streamInfo", r.ProfileAPIBase, modelID)
	resp, err := r.Fetcher.Get(ctx, url)
	if err != nil {
		cmdlib.Lerr("cannot query stream info for model %s, %v", modelID, err)
		return nil
	}
	// 204 means not currently streaming
	if resp.StatusCode == 204 || resp.StatusCode == 404 {
		return nil
	}
	if resp.StatusCode != 200 {
		cmdlib.Lerr("stream info query status for model %s: %d", modelID, resp.StatusCode)
		return nil
	}
	body := strings.TrimSpace(resp.Body)
	if body == "" || body == "{}" || body == "null" {
		return nil
	}
	parsed := &streamInfo{}
	if err := json.Unmarshal([]byte(body), parsed); err != nil {
		cmdlib.Lerr("cannot parse stream info for model %s, %v", modelID, err)
		if r.Dbg {
			cmdlib.Ldbg("response: %s", resp.Body)
		}
		return nil
	}
	return parsed
}

// probeStream checks the playlist is actually viewable.
// Body markers take priority over the status code, the CDN serves the
// private show notice with benign statuses too.
func (r *Resolver) probeStream(ctx context.Context, modelID, playlistURL string) (bool, string) {
	resp, err := r.Fetcher.Get(ctx, playlistURL)
	if err != nil {
		cmdlib.Lerr("cannot probe stream for model %s, %v", modelID, err)
		return false, fmt.Sprintf("Error accessing stream: %v", err)
	}
	lower := strings.ToLower(resp.Body)
	if strings.Contains(lower, "not allowed to view") || strings.Contains(lower, "session is not allowed") {
		return false, privateMessage
	}
	if resp.StatusCode == 400 || resp.StatusCode == 403 {
		return false, privateMessage
	}
	if strings.Contains(resp.Body, "#EXTM3U") {
		return true, ""
	}
	return false, "Invalid stream response"
}
