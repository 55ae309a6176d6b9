package recorder

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bcmk/camgrab/internal/resolver"
)

func TestStartRefusesNonStreaming(t *testing.T) {
	result := resolver.Result{
		ModelID: "foo_1",
		Status:  resolver.StatusPrivateOrAway,
		Message: "foo_1: Stream not accessible - performer may be in a private show or away",
	}
	_, err := Start(result, "", nil)
	if err == nil {
		t.Error("expected error")
		return
	}
	var notStreaming *NotStreamingError
	if !errors.As(err, &notStreaming) {
		t.Errorf("expected NotStreamingError, got %T", err)
		return
	}
	if notStreaming.Status != resolver.StatusPrivateOrAway {
		t.Errorf("unexpected status %v", notStreaming.Status)
	}
	if notStreaming.Message != result.Message {
		t.Errorf("unexpected message %q", notStreaming.Message)
	}
}

func TestFfmpegArgs(t *testing.T) {
	args := ffmpegArgs("https://cdn/x.m3u8", "out.ts", []string{"-t", "60"})
	expected := "-i https://cdn/x.m3u8 -c:v copy -c:a copy -y -t 60 out.ts"
	if strings.Join(args, " ") != expected {
		t.Errorf("unexpected args %v", args)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	if DefaultOutputPath("foo_1", now) != "foo_1_20240506_070809.ts" {
		t.Error("unexpected results")
	}
}
