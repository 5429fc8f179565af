// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package media locates and runs the external media binaries (ffmpeg and
// ffprobe) the video stage depends on.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pdiddy/research-studio/internal/logger"
)

const (
	// DefaultFFmpeg is the encoder binary name looked up on PATH.
	DefaultFFmpeg = "ffmpeg"

	// DefaultFFprobe is the inspection binary name looked up on PATH.
	DefaultFFprobe = "ffprobe"

	// stderrTail bounds how much tool output is quoted in errors.
	stderrTail = 800
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// Tool runs one media binary.
type Tool struct {
	bin  string
	exec executor
}

// Lookup returns a Tool for bin after confirming it is on PATH.
func Lookup(bin string) (*Tool, error) {
	return lookup(defaultExec, bin)
}

func lookup(ex executor, bin string) (*Tool, error) {
	path, err := ex.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", bin, err)
	}
	logger.Debug("media: using %s at %s", bin, path)
	return &Tool{bin: bin, exec: ex}, nil
}

// Run executes the binary and discards stdout. On failure the error carries
// the tail of stderr.
func (t *Tool) Run(ctx context.Context, args ...string) error {
	_, err := t.Output(ctx, args...)
	return err
}

// Output executes the binary and returns its stdout.
func (t *Tool) Output(ctx context.Context, args ...string) ([]byte, error) {
	logger.Debug("media: %s %s", t.bin, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	if err := t.exec.Run(ctx, t.bin, args, &stdout, &stderr); err != nil {
		if msg := tail(stderr.String(), stderrTail); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", t.bin, err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", t.bin, err)
	}
	return stdout.Bytes(), nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
