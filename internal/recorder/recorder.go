// Package recorder spawns ffmpeg to capture a live stream
package recorder

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/bcmk/camgrab/internal/resolver"
	"github.com/bcmk/camgrab/lib/cmdlib"
)

// NotStreamingError is returned on an attempt to record a performer
// who is not streaming, it carries the resolved classification
type NotStreamingError struct {
	Status  resolver.StatusKind
	Message string
}

func (e *NotStreamingError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("performer is not streaming, status %v", e.Status)
}

// Recording represents a running ffmpeg process
type Recording struct {
	cmd        *exec.Cmd
	outputPath string
}

// DefaultOutputPath returns the output path used when none is given
func DefaultOutputPath(modelID string, now time.Time) string {
	return fmt.Sprintf("%s_%s.ts", modelID, now.Format("20060102_150405"))
}

func ffmpegArgs(streamURL, outputPath string, extraArgs []string) []string {
	args := []string{"-i", streamURL, "-c:v", "copy", "-c:a", "copy", "-y"}
	args = append(args, extraArgs...)
	return append(args, outputPath)
}

// Start launches ffmpeg copying the stream into the output container.
// The result must be a streaming one, anything else is a usage error.
func Start(result resolver.Result, outputPath string, extraArgs []string) (*Recording, error) {
	if result.Status != resolver.StatusStreaming {
		return nil, &NotStreamingError{Status: result.Status, Message: result.Message}
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath(result.ModelID, time.Now())
	}
	cmd := exec.Command("ffmpeg", ffmpegArgs(result.StreamURL, outputPath, extraArgs)...)
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("cannot start ffmpeg, %v", err)
	}
	cmdlib.Linf("recording %s to %s", result.ModelID, outputPath)
	return &Recording{cmd: cmd, outputPath: outputPath}, nil
}

// OutputPath returns the path being written
func (r *Recording) OutputPath() string { return r.outputPath }

// Wait waits for ffmpeg to exit on its own
func (r *Recording) Wait() error { return r.cmd.Wait() }

// Stop asks ffmpeg to stop so it can flush the container,
// the caller still reaps the process with Wait
func (r *Recording) Stop() error {
	if err := r.cmd.Process.Signal(os.Interrupt); err != nil {
		return r.cmd.Process.Kill()
	}
	return nil
}
