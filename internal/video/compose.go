// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package video composites narrated text segments into an MP4 file and
// reports basic properties of existing videos. Encoding is delegated to
// ffmpeg and ffprobe.
package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/research-studio/internal/chunk"
	"github.com/pdiddy/research-studio/internal/logger"
	"github.com/pdiddy/research-studio/pkg/types"
)

// Defaults applied to zero-valued VideoConfig fields.
const (
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultFPS        = 24
	DefaultBackground = "0x1e1e32"
	DefaultTextColor  = "white"
	DefaultFontSize   = 48
)

// ErrNoClips is returned when none of the segments could be rendered.
var ErrNoClips = errors.New("no video clips were created")

// Runner executes a media binary. *media.Tool satisfies it.
type Runner interface {
	Run(ctx context.Context, args ...string) error
	Output(ctx context.Context, args ...string) ([]byte, error)
}

// Segment is one narrated piece of text.
type Segment struct {
	Text      string
	AudioPath string
}

// Compositor renders segments as text-on-background clips and joins them.
type Compositor struct {
	ffmpeg Runner
	cfg    types.VideoConfig
}

// NewCompositor returns a Compositor that encodes with ffmpeg.
func NewCompositor(ffmpeg Runner, cfg types.VideoConfig) *Compositor {
	return &Compositor{ffmpeg: ffmpeg, cfg: withDefaults(cfg)}
}

func withDefaults(cfg types.VideoConfig) types.VideoConfig {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Background == "" {
		cfg.Background = DefaultBackground
	}
	if cfg.TextColor == "" {
		cfg.TextColor = DefaultTextColor
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = DefaultFontSize
	}
	if cfg.WrapWidth <= 0 {
		cfg.WrapWidth = chunk.DefaultWrapWidth
	}
	return cfg
}

// Compose writes one MP4 to outPath containing a clip per segment, in
// order. Segments whose audio file is missing are skipped.
func (c *Compositor) Compose(ctx context.Context, segments []Segment, outPath string) error {
	work, err := os.MkdirTemp("", "research-studio-video-*")
	if err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(work)

	var clips []string
	for i, seg := range segments {
		if seg.AudioPath == "" {
			logger.Warn("segment %d has no audio, skipping", i+1)
			continue
		}
		if _, err := os.Stat(seg.AudioPath); err != nil {
			logger.Warn("segment %d audio %s unavailable, skipping: %v", i+1, seg.AudioPath, err)
			continue
		}

		clip, err := c.renderClip(ctx, work, i, seg)
		if err != nil {
			return fmt.Errorf("rendering segment %d: %w", i+1, err)
		}
		clips = append(clips, clip)
	}

	if len(clips) == 0 {
		return ErrNoClips
	}
	return c.concat(ctx, work, clips, outPath)
}

func (c *Compositor) renderClip(ctx context.Context, work string, i int, seg Segment) (string, error) {
	textPath := filepath.Join(work, fmt.Sprintf("text_%03d.txt", i))
	wrapped := chunk.Wrap(seg.Text, c.cfg.WrapWidth)
	if err := os.WriteFile(textPath, []byte(wrapped), 0o644); err != nil {
		return "", fmt.Errorf("writing overlay text: %w", err)
	}

	clip := filepath.Join(work, fmt.Sprintf("clip_%03d.mp4", i))
	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%dx%d:r=%d", c.cfg.Background, c.cfg.Width, c.cfg.Height, c.cfg.FPS),
		"-i", seg.AudioPath,
		"-vf", c.drawText(textPath),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-shortest",
		clip,
	}
	if err := c.ffmpeg.Run(ctx, args...); err != nil {
		return "", err
	}
	return clip, nil
}

// drawText builds the centered overlay filter for the text in textPath.
// Expansion is off so '%' and '\' in the text are drawn literally.
func (c *Compositor) drawText(textPath string) string {
	opts := []string{
		"textfile=" + quoteFilterValue(textPath),
		"expansion=none",
		"fontcolor=" + c.cfg.TextColor,
		"fontsize=" + strconv.Itoa(c.cfg.FontSize),
		"line_spacing=10",
		"x=(w-text_w)/2",
		"y=(h-text_h)/2",
	}
	if c.cfg.FontFile != "" {
		opts = append(opts, "fontfile="+quoteFilterValue(c.cfg.FontFile))
	}
	return "drawtext=" + strings.Join(opts, ":")
}

func (c *Compositor) concat(ctx context.Context, work string, clips []string, outPath string) error {
	var list strings.Builder
	for _, clip := range clips {
		fmt.Fprintf(&list, "file %s\n", quoteFilterValue(clip))
	}
	listPath := filepath.Join(work, "clips.txt")
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return fmt.Errorf("writing concat list: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", outPath, err)
	}

	logger.Debug("video: joining %d clips into %s", len(clips), outPath)
	return c.ffmpeg.Run(ctx,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outPath,
	)
}

// quoteFilterValue single-quotes s for ffmpeg filter and concat syntax.
func quoteFilterValue(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
